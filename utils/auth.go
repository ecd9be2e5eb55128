package utils

import "eps-bot/model"

// Permission levels, lowest to highest.
const (
	GuestPermission = iota
	AdminPermission
	OwnerPermission
)

func contains(slice []string, item string) bool {
	for _, a := range slice {
		if a == item {
			return true
		}
	}
	return false
}

// CheckPermission resolves the highest permission level for a user given
// their role IDs and the configured admin lists.
func CheckPermission(userID string, roleIDs []string, cfg *model.Config) int {
	if cfg.OwnerID != "" && userID == cfg.OwnerID {
		return OwnerPermission
	}
	if contains(cfg.AdminUserIDs, userID) {
		return AdminPermission
	}
	for _, roleID := range roleIDs {
		if contains(cfg.AdminRoleIDs, roleID) {
			return AdminPermission
		}
	}
	return GuestPermission
}
