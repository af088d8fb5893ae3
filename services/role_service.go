package services

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"hotel-backoffice/models"

	"gorm.io/gorm"
)

// RoleService resolves permissions from the stored matrix. Roles without
// stored grants fall back to DefaultPermissions.
type RoleService struct {
	DB *gorm.DB

	mu    sync.RWMutex
	cache map[string]map[string]bool
}

func NewRoleService(db *gorm.DB) *RoleService {
	return &RoleService{DB: db}
}

type RoleView struct {
	ID          uint                       `json:"id"`
	Name        string                     `json:"name"`
	Description string                     `json:"description"`
	Rank        int                        `json:"rank"`
	Permissions map[string]map[string]bool `json:"permissions"`
}

// permissionGrid lays every known key out as module -> action -> false.
func permissionGrid() map[string]map[string]bool {
	grid := map[string]map[string]bool{}
	for _, p := range AllPermissions() {
		module, action, _ := strings.Cut(p, ".")
		if grid[module] == nil {
			grid[module] = map[string]bool{}
		}
		grid[module][action] = false
	}
	return grid
}

func (s *RoleService) List() ([]RoleView, error) {
	var roles []models.Role
	if err := s.DB.Preload("Permissions").Find(&roles).Error; err != nil {
		return nil, err
	}
	// rank is reserved in MySQL 8, so order here rather than in SQL.
	sort.Slice(roles, func(i, j int) bool { return roles[i].Rank > roles[j].Rank })
	out := make([]RoleView, 0, len(roles))
	for _, role := range roles {
		grid := permissionGrid()
		for _, perm := range role.Permissions {
			module, action, ok := strings.Cut(perm.Permission, ".")
			if !ok {
				continue
			}
			if grid[module] == nil {
				grid[module] = map[string]bool{}
			}
			grid[module][action] = true
		}
		out = append(out, RoleView{
			ID:          role.ID,
			Name:        role.Name,
			Description: role.Description,
			Rank:        role.Rank,
			Permissions: grid,
		})
	}
	return out, nil
}

// UpdatePermissions replaces the grants of a role, found by id or by name.
// Unknown keys are rejected and the admin role always keeps roles.manage.
func (s *RoleService) UpdatePermissions(actor Actor, key string, perms []string) (*RoleView, error) {
	known := map[string]bool{}
	for _, p := range AllPermissions() {
		known[p] = true
	}
	set := map[string]bool{}
	for _, p := range perms {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !known[p] {
			return nil, fmt.Errorf("%w: unknown permission %q", ErrInvalidInput, p)
		}
		set[p] = true
	}
	keys := make([]string, 0, len(set))
	for p := range set {
		keys = append(keys, p)
	}
	sort.Strings(keys)

	var role models.Role
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		q := tx.Preload("Permissions")
		if id, err := strconv.ParseUint(key, 10, 64); err == nil {
			q = q.Where("id = ?", id)
		} else {
			q = q.Where("name = ?", key)
		}
		if err := q.First(&role).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: role %q", ErrNotFound, key)
			}
			return err
		}
		if role.Name == models.RoleAdmin && !set[PermRolesManage] {
			return fmt.Errorf("%w: admin must keep %s", ErrInvalidState, PermRolesManage)
		}
		before := make([]string, 0, len(role.Permissions))
		for _, p := range role.Permissions {
			before = append(before, p.Permission)
		}
		if err := tx.Where("role_id = ?", role.ID).Delete(&models.RolePermission{}).Error; err != nil {
			return err
		}
		if len(keys) > 0 {
			rows := make([]models.RolePermission, 0, len(keys))
			for _, p := range keys {
				rows = append(rows, models.RolePermission{RoleID: role.ID, Permission: p})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return Audit(tx, actor, "role.permissions", "role", role.ID, before, keys)
	})
	if err != nil {
		return nil, err
	}
	s.invalidate()

	views, err := s.List()
	if err != nil {
		return nil, err
	}
	for i := range views {
		if views[i].ID == role.ID {
			return &views[i], nil
		}
	}
	return nil, fmt.Errorf("%w: role %q", ErrNotFound, key)
}

// Allowed reports whether role holds perm.
func (s *RoleService) Allowed(role, perm string) (bool, error) {
	s.mu.RLock()
	grants, ok := s.cache[role]
	s.mu.RUnlock()
	if ok {
		return grants[perm], nil
	}

	var stored []string
	err := s.DB.Model(&models.RolePermission{}).
		Joins("JOIN roles ON roles.id = role_permissions.role_id").
		Where("roles.name = ?", role).
		Pluck("role_permissions.permission", &stored).Error
	if err != nil {
		return false, err
	}
	if len(stored) == 0 {
		stored = DefaultPermissions(role)
	}
	grants = make(map[string]bool, len(stored))
	for _, p := range stored {
		grants[p] = true
	}

	s.mu.Lock()
	if s.cache == nil {
		s.cache = map[string]map[string]bool{}
	}
	s.cache[role] = grants
	s.mu.Unlock()
	return grants[perm], nil
}

func (s *RoleService) invalidate() {
	s.mu.Lock()
	s.cache = nil
	s.mu.Unlock()
}
