package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/brightpath/brightpath-backend/internal/logger"
	"github.com/brightpath/brightpath-backend/internal/repos"
	"github.com/brightpath/brightpath-backend/internal/types"
)

// permissionsByRole is the fixed permission matrix. Roles are flat; admin is a
// strict superset of member.
var permissionsByRole = map[string][]string{
	types.RoleMember: {
		"recommendations:read",
		"profile:read",
		"profile:write",
		"interactions:write",
	},
	types.RoleAdmin: {
		"recommendations:read",
		"profile:read",
		"profile:write",
		"interactions:write",
		"models:read",
		"models:write",
		"models:train",
		"analytics:read",
		"roles:read",
	},
}

type RoleInfo struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

type RoleService interface {
	Describe(role string) RoleInfo
	HasPermission(role, permission string) bool
	ListRoles() []RoleInfo
	// OrganizationMembers is the admin-gated privileged read.
	OrganizationMembers(ctx context.Context, orgID uuid.UUID) ([]*types.User, error)
}

type roleService struct {
	users repos.UserRepo
	log   *logger.Logger
}

func NewRoleService(users repos.UserRepo, baseLog *logger.Logger) RoleService {
	return &roleService{
		users: users,
		log:   baseLog.With("service", "RoleService"),
	}
}

func (s *roleService) Describe(role string) RoleInfo {
	perms, ok := permissionsByRole[role]
	if !ok {
		perms = []string{}
	}
	return RoleInfo{Role: role, Permissions: perms}
}

func (s *roleService) HasPermission(role, permission string) bool {
	for _, p := range permissionsByRole[role] {
		if p == permission {
			return true
		}
	}
	return false
}

func (s *roleService) ListRoles() []RoleInfo {
	return []RoleInfo{
		s.Describe(types.RoleMember),
		s.Describe(types.RoleAdmin),
	}
}

func (s *roleService) OrganizationMembers(ctx context.Context, orgID uuid.UUID) ([]*types.User, error) {
	return s.users.ListByOrganization(ctx, nil, orgID, 0)
}
