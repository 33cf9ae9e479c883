package domain

// Platform identifiers consumed by the admission gates.
const (
	// FeatureTelephonyMessaging is the platform feature required of a device
	// before the public SMS entry points may be honored.
	FeatureTelephonyMessaging = "hardware.telephony.messaging"

	// CompatEnforceTelephonyFeatureMapping is the compatibility change that
	// stages feature enforcement by caller target SDK.
	CompatEnforceTelephonyFeatureMapping = "enforce_telephony_feature_mapping"

	// PermissionInteractAcrossUsersFull lets a caller act on subscriptions
	// associated with other users.
	PermissionInteractAcrossUsersFull = "permission.INTERACT_ACROSS_USERS_FULL"
)

// Caller identifies the package invoking a public entry point, together with
// the identity attributes the gates decide on. It is established once at the
// transport boundary from the platform-issued identity token.
type Caller struct {
	Package     string
	UserID      int
	UID         int
	TargetSdk   int
	Permissions []string
}

// HasPermission reports whether the caller was granted the named permission.
func (c Caller) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}
