package transport

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/goodnatureofminers/saleledger/internal/sale/model"
)

const defaultWithdrawWorkers = 4

// SettlementHandler implements SettlementServer on top of a Settlement.
type SettlementHandler struct {
	settlement Settlement
	history    History
	logger     *zap.Logger
}

// NewSettlementHandler returns a SettlementHandler. history may be nil, in
// which case History answers Unimplemented.
func NewSettlementHandler(settlement Settlement, history History, logger *zap.Logger) (*SettlementHandler, error) {
	if settlement == nil {
		return nil, errors.New("settlement is required")
	}
	return &SettlementHandler{
		settlement: settlement,
		history:    history,
		logger:     logger.Named("transport"),
	}, nil
}

var _ SettlementServer = (*SettlementHandler)(nil)

func (h *SettlementHandler) fail(op string, err error) error {
	st := toStatus(err)
	if status.Code(st) == codes.Internal {
		h.logger.Error("settlement call failed", zap.String("operation", op), zap.Error(err))
	}
	return st
}

// Contribute buys tokens, or records a deferred contribution in the last phase.
func (h *SettlementHandler) Contribute(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	participant, err := accountField(req, "participant")
	if err != nil {
		return nil, err
	}
	value, err := amountField(req, "value")
	if err != nil {
		return nil, err
	}
	tokens, err := h.settlement.Contribute(ctx, participant, value)
	if err != nil {
		return nil, h.fail("contribute", err)
	}
	return newStruct(map[string]any{
		"participant": string(participant),
		"value":       value.Dec(),
		"tokens":      amountValue(tokens),
	})
}

// Finalize closes the sale with the requested outcome.
func (h *SettlementHandler) Finalize(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	caller, err := accountField(req, "caller")
	if err != nil {
		return nil, err
	}
	raw, err := optionalString(req, "outcome")
	if err != nil {
		return nil, err
	}
	outcome, err := model.ParseOutcome(raw)
	if err != nil {
		return nil, h.fail("finalize", err)
	}
	if err = h.settlement.Finalize(ctx, caller, outcome); err != nil {
		return nil, h.fail("finalize", err)
	}
	return newStruct(map[string]any{"outcome": outcome.String()})
}

// WithdrawTokens pays the caller's pro-rata allocation.
func (h *SettlementHandler) WithdrawTokens(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	participant, err := accountField(req, "participant")
	if err != nil {
		return nil, err
	}
	amount, err := h.settlement.WithdrawTokens(ctx, participant)
	if err != nil {
		return nil, h.fail("withdraw_tokens", err)
	}
	return participantAmount(participant, "amount", amountValue(amount))
}

// WithdrawTokensFor pays a participant's allocation on the issuer's behalf.
func (h *SettlementHandler) WithdrawTokensFor(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	caller, participant, err := callerAndParticipant(req)
	if err != nil {
		return nil, err
	}
	amount, err := h.settlement.WithdrawTokensFor(ctx, caller, participant)
	if err != nil {
		return nil, h.fail("withdraw_tokens_for", err)
	}
	return participantAmount(participant, "amount", amountValue(amount))
}

// WithdrawAll distributes every pending allocation.
func (h *SettlementHandler) WithdrawAll(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	caller, err := accountField(req, "caller")
	if err != nil {
		return nil, err
	}
	workers, err := intField(req, "workers", defaultWithdrawWorkers)
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		return nil, status.Error(codes.InvalidArgument, "workers must be positive")
	}
	n, err := h.settlement.WithdrawAllFor(ctx, caller, workers)
	if err != nil {
		return nil, h.fail("withdraw_all", err)
	}
	return newStruct(map[string]any{"withdrawn": n})
}

// LoadRefund funds the refund escrow from the issuer.
func (h *SettlementHandler) LoadRefund(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	caller, err := accountField(req, "caller")
	if err != nil {
		return nil, err
	}
	amount, err := amountField(req, "amount")
	if err != nil {
		return nil, err
	}
	if err = h.settlement.LoadRefund(ctx, caller, amount); err != nil {
		return nil, h.fail("load_refund", err)
	}
	return newStruct(map[string]any{"amount": amount.Dec()})
}

// ClaimRefund returns the caller's contribution from the escrow.
func (h *SettlementHandler) ClaimRefund(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	participant, err := accountField(req, "participant")
	if err != nil {
		return nil, err
	}
	value, err := h.settlement.ClaimRefund(ctx, participant)
	if err != nil {
		return nil, h.fail("claim_refund", err)
	}
	return participantAmount(participant, "value", amountValue(value))
}

// ClaimRefundFor refunds a participant on the issuer's behalf.
func (h *SettlementHandler) ClaimRefundFor(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	caller, participant, err := callerAndParticipant(req)
	if err != nil {
		return nil, err
	}
	value, err := h.settlement.ClaimRefundFor(ctx, caller, participant)
	if err != nil {
		return nil, h.fail("claim_refund_for", err)
	}
	return participantAmount(participant, "value", amountValue(value))
}

// Clawback moves a participant's whole token balance to the issuer.
func (h *SettlementHandler) Clawback(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	caller, participant, err := callerAndParticipant(req)
	if err != nil {
		return nil, err
	}
	amount, err := h.settlement.Clawback(ctx, caller, participant)
	if err != nil {
		return nil, h.fail("clawback", err)
	}
	return participantAmount(participant, "amount", amountValue(amount))
}

// Status reports the sale snapshot.
func (h *SettlementHandler) Status(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	s, err := h.settlement.Snapshot(ctx)
	if err != nil {
		return nil, h.fail("status", err)
	}
	return newStruct(map[string]any{
		"sale":              s.Sale,
		"state":             s.State.String(),
		"outcome":           s.State.Outcome().String(),
		"has_closed":        s.HasClosed,
		"sold_out":          s.SoldOut,
		"active_phase":      s.ActivePhase,
		"opening_time":      timeValue(s.OpeningTime),
		"closing_time":      timeValue(s.ClosingTime),
		"held_balance":      amountValue(s.HeldBalance),
		"total_contributed": amountValue(s.TotalContributed),
		"pool":              amountValue(s.Pool),
		"participants":      s.Participants,
		"pending":           s.Pending,
		"escrow_status":     s.EscrowStatus.String(),
		"escrow_balance":    amountValue(s.EscrowBalance),
	})
}

// Participant reports one participant.
func (h *SettlementHandler) Participant(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	participant, err := accountField(req, "participant")
	if err != nil {
		return nil, err
	}
	p, err := h.settlement.Participant(ctx, participant)
	if err != nil {
		return nil, h.fail("participant", err)
	}
	return newStruct(map[string]any{
		"participant":   string(p.Account),
		"invested":      amountValue(p.Invested),
		"allocation":    amountValue(p.Allocation),
		"token_balance": amountValue(p.TokenBalance),
		"withdrawn":     p.Withdrawn,
		"refunded":      p.Refunded,
	})
}

// History lists a participant's journaled events, oldest first.
func (h *SettlementHandler) History(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if h.history == nil {
		return nil, status.Error(codes.Unimplemented, "event journal is not configured")
	}
	participant, err := accountField(req, "participant")
	if err != nil {
		return nil, err
	}
	events, err := h.history.EventsByParticipant(ctx, h.settlement.Sale(), participant)
	if err != nil {
		return nil, h.fail("history", err)
	}
	items := make([]any, 0, len(events))
	for _, ev := range events {
		item := map[string]any{
			"id":          ev.ID.String(),
			"kind":        string(ev.Kind),
			"occurred_at": timeValue(ev.OccurredAt),
		}
		if ev.Value != nil {
			item["value"] = ev.Value.Dec()
		}
		if ev.Amount != nil {
			item["amount"] = ev.Amount.Dec()
		}
		if ev.Outcome != model.OutcomeUnknown {
			item["outcome"] = ev.Outcome.String()
		}
		items = append(items, item)
	}
	return newStruct(map[string]any{
		"participant": string(participant),
		"events":      items,
	})
}

func callerAndParticipant(req *structpb.Struct) (model.Account, model.Account, error) {
	caller, err := accountField(req, "caller")
	if err != nil {
		return "", "", err
	}
	participant, err := accountField(req, "participant")
	if err != nil {
		return "", "", err
	}
	return caller, participant, nil
}

func participantAmount(participant model.Account, field, amount string) (*structpb.Struct, error) {
	return newStruct(map[string]any{
		"participant": string(participant),
		field:         amount,
	})
}
