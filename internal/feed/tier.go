package feed

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/vendora/marketfeed/internal/models"
	"github.com/vendora/marketfeed/pkg/logging"
)

// VendorStore provides vendor subscription facts
type VendorStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Vendor, error)
	GetPlanName(ctx context.Context, planID int64) (string, error)
}

// SubscriptionStore provides consumer subscription facts
type SubscriptionStore interface {
	GetLatestByUserID(ctx context.Context, userID int64) (*models.Subscription, error)
}

// TierResolver resolves an author's current subscription tier from
// collaborator stores. Lookup failures degrade to TierNone rather than
// failing the surrounding request.
type TierResolver struct {
	vendors VendorStore
	subs    SubscriptionStore
	logger  *zap.Logger
}

// NewTierResolver creates a new tier resolver
func NewTierResolver(vendors VendorStore, subs SubscriptionStore) *TierResolver {
	return &TierResolver{
		vendors: vendors,
		subs:    subs,
		logger:  logging.GetLogger().With(zap.String("component", "tier-resolver")),
	}
}

// Resolve returns the tier for a user under the given role
func (r *TierResolver) Resolve(ctx context.Context, userID int64, role Role) Tier {
	switch role {
	case RoleVendor:
		return r.resolveVendor(ctx, userID)
	case RoleConsumer:
		return r.resolveConsumer(ctx, userID)
	default:
		return TierNone
	}
}

func (r *TierResolver) resolveVendor(ctx context.Context, userID int64) Tier {
	vendor, err := r.vendors.GetByUserID(ctx, userID)
	if err != nil {
		r.logger.Warn("vendor lookup failed", zap.Int64("user_id", userID), zap.Error(err))
		return TierNone
	}
	if vendor == nil {
		return TierNone
	}

	planName := ""
	if vendor.PlanID.Valid {
		planName, err = r.vendors.GetPlanName(ctx, vendor.PlanID.Int64)
		if err != nil {
			r.logger.Warn("plan lookup failed", zap.Int64("plan_id", vendor.PlanID.Int64), zap.Error(err))
			return TierNone
		}
	}

	coarseTier := ""
	if vendor.Tier.Valid {
		coarseTier = vendor.Tier.String
	}

	return VendorTier(vendor.SubscriptionStatus, planName, coarseTier)
}

func (r *TierResolver) resolveConsumer(ctx context.Context, userID int64) Tier {
	sub, err := r.subs.GetLatestByUserID(ctx, userID)
	if err != nil {
		r.logger.Warn("subscription lookup failed", zap.Int64("user_id", userID), zap.Error(err))
		return TierNone
	}
	if sub == nil {
		return TierNone
	}
	return ConsumerTier(sub.Status, sub.PlanKey)
}

// VendorTier maps vendor subscription facts to a tier. A named plan wins
// over the coarse tier field, which predates per-plan billing.
func VendorTier(status, planName, coarseTier string) Tier {
	if !subscriptionEligible(status) {
		return TierNone
	}

	if planName != "" {
		name := strings.ToLower(planName)
		switch {
		case strings.Contains(name, "elite"):
			return TierVIP
		case strings.Contains(name, "enterprise"):
			return TierEnterprise
		case strings.Contains(name, "pro"):
			return TierPro
		case strings.Contains(name, "basic"):
			return TierStarter
		}
		return TierNone
	}

	switch strings.ToLower(coarseTier) {
	case "top":
		return TierEnterprise
	case "mid":
		return TierPro
	case "starter":
		return TierStarter
	}
	return TierNone
}

// ConsumerTier maps a consumer subscription to a tier
func ConsumerTier(status, planKey string) Tier {
	if !subscriptionEligible(status) {
		return TierNone
	}
	key := strings.ToLower(planKey)
	if strings.Contains(key, "vip") || strings.Contains(key, "premium") {
		return TierVIP
	}
	return TierStarter
}

func subscriptionEligible(status string) bool {
	return status == models.SubscriptionStatusActive || status == models.SubscriptionStatusTrialing
}
