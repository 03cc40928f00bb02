package feed

// Role is an author role, snapshotted onto each post at creation
type Role string

// Marketplace roles
const (
	RoleAdmin     Role = "admin"
	RoleVendor    Role = "vendor"
	RoleConsumer  Role = "consumer"
	RoleAffiliate Role = "affiliate"
	RoleDriver    Role = "driver"
)

// Tier is a subscription tier, snapshotted onto each post at creation
type Tier string

// Subscription tiers
const (
	TierNone       Tier = "none"
	TierStarter    Tier = "starter"
	TierPro        Tier = "pro"
	TierEnterprise Tier = "enterprise"
	TierVIP        Tier = "vip"
)

// Priority ranks. Lower values sort first.
const (
	rankAdmin      = 0
	rankVIP        = 100
	rankEnterprise = 200
	rankPro        = 300
	rankStarter    = 400
	rankDefault    = 500
)

// Rank maps a (role, tier) pair to the priority rank stored on a post.
// Admin posts always outrank every non-admin combination. The rank is
// computed once at write time and never recomputed for existing posts,
// so a later tier change does not reorder an author's history.
func Rank(role Role, tier Tier) int {
	if role == RoleAdmin {
		return rankAdmin
	}
	switch tier {
	case TierVIP:
		return rankVIP
	case TierEnterprise:
		return rankEnterprise
	case TierPro:
		return rankPro
	case TierStarter:
		return rankStarter
	default:
		return rankDefault
	}
}
