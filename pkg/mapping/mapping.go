package mapping

import (
	"github.com/BURAK1289/confession-tip/pkg/api"
	"github.com/BURAK1289/confession-tip/pkg/models"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// parseUUID converts a stored id into the API's UUID type. Ids are generated
// by the store, so a parse failure only happens on corrupt data and maps to
// the zero UUID rather than an error on the read path.
func parseUUID(s string) openapi_types.UUID {
	id, _ := uuid.Parse(s)
	return id
}

// ToApiConfession converts a domain Confession to its public API view.
// The owner address is dropped here: confessions are anonymous everywhere
// outside the datastore.
func ToApiConfession(confession *models.Confession) *api.Confession {
	return &api.Confession{
		Id:             parseUUID(confession.ID),
		Content:        confession.Content,
		Category:       confession.Category,
		TotalTips:      models.FormatMicro(confession.TotalTipsMicro),
		TotalTipsMicro: confession.TotalTipsMicro,
		TipCount:       confession.TipCount,
		CreatedAt:      confession.CreatedAt,
	}
}

// ToDomainNewConfession converts an API NewConfession into a domain model.
// Counters and server-side fields are filled in by the store.
func ToDomainNewConfession(newConfession *api.NewConfession) *models.Confession {
	return &models.Confession{
		OwnerAddress: models.NormalizeAddress(newConfession.OwnerAddress),
		Content:      newConfession.Content,
	}
}

// ToApiTip converts a ledger row to its public API view. The confession
// owner's address is omitted for the same anonymity reason as above; the
// payer is public information on chain already.
func ToApiTip(tip *models.TipRecord) *api.Tip {
	return &api.Tip{
		Id:           parseUUID(tip.ID),
		SubjectId:    parseUUID(tip.SubjectID),
		PayerAddress: tip.PayerAddress,
		Amount:       models.FormatMicro(tip.AmountMicro),
		AmountMicro:  tip.AmountMicro,
		Reference:    tip.Reference,
		CreatedAt:    tip.CreatedAt,
	}
}

// ToApiUserStats converts a domain UserStats to its API view.
func ToApiUserStats(user *models.UserStats) *api.UserStats {
	return &api.UserStats{
		Address:           user.Address,
		TotalTipsGiven:    models.FormatMicro(user.TotalTipsGivenMicro),
		TotalTipsReceived: models.FormatMicro(user.TotalTipsReceivedMicro),
		TipsGivenMicro:    user.TotalTipsGivenMicro,
		TipsReceivedMicro: user.TotalTipsReceivedMicro,
		ReferralCode:      user.ReferralCode,
		CreatedAt:         user.CreatedAt,
	}
}
