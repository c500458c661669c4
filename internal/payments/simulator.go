package payments

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/marketplace-zw/storefront-backend/pkg/config"
	"github.com/marketplace-zw/storefront-backend/pkg/enums"
	pkgerrors "github.com/marketplace-zw/storefront-backend/pkg/errors"
	"github.com/marketplace-zw/storefront-backend/pkg/types"
)

// Request carries what a payment provider would need to take a payment.
type Request struct {
	Method        enums.PaymentMethod
	Amount        decimal.Decimal
	Reference     string
	Customer      types.CustomerInfo
	EcoCashNumber string
}

// BankDetails are the static transfer instructions shown for bank payments.
type BankDetails struct {
	Name          string `json:"name"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	BranchCode    string `json:"branch_code"`
}

// Instructions is what the buyer sees after submitting an order. Amount and
// reference are identical across methods; the method only changes how the
// buyer settles.
type Instructions struct {
	Method        enums.PaymentMethod `json:"method"`
	Amount        decimal.Decimal     `json:"amount"`
	Reference     string              `json:"reference"`
	EcoCashNumber string              `json:"ecocash_number,omitempty"`
	Bank          *BankDetails        `json:"bank,omitempty"`
	// AutoCompleted marks methods (cash on delivery) that need no buyer
	// confirmation at all.
	AutoCompleted bool `json:"auto_completed"`
}

// Simulator stands in for a real payment gateway client. Initiate produces
// the per-method instructions; CheckStatus models the provider's payment
// lookup for methods that verify (paynow only).
type Simulator interface {
	Initiate(ctx context.Context, req Request) (*Instructions, error)
	CheckStatus(ctx context.Context, req Request) (bool, error)
}

// OutcomePolicy decides whether a checked payment has landed. Injectable so
// tests force outcomes instead of drawing randomly.
type OutcomePolicy interface {
	Confirmed(req Request) bool
}

type randomPolicy struct {
	mu   sync.Mutex
	rate float64
	rng  *rand.Rand
}

// NewRandomPolicy confirms payments with the given probability. This is the
// demo behavior, not production logic.
func NewRandomPolicy(successRate float64, seed int64) OutcomePolicy {
	return &randomPolicy{rate: successRate, rng: rand.New(rand.NewSource(seed))}
}

func (p *randomPolicy) Confirmed(Request) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Float64() < p.rate
}

type simulator struct {
	cfg    config.PaymentConfig
	policy OutcomePolicy
}

// NewSimulator wires the stub gateway from config and an outcome policy.
func NewSimulator(cfg config.PaymentConfig, policy OutcomePolicy) (Simulator, error) {
	if policy == nil {
		return nil, fmt.Errorf("outcome policy required")
	}
	return &simulator{cfg: cfg, policy: policy}, nil
}

func (s *simulator) Initiate(ctx context.Context, req Request) (*Instructions, error) {
	if !req.Method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method").WithDetails(map[string]any{
			"method": string(req.Method),
		})
	}
	if req.Reference == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment reference is required")
	}

	out := &Instructions{
		Method:    req.Method,
		Amount:    req.Amount,
		Reference: req.Reference,
	}

	switch req.Method {
	case enums.PaymentMethodEcoCash:
		out.EcoCashNumber = req.EcoCashNumber
	case enums.PaymentMethodBankTransfer:
		out.Bank = &BankDetails{
			Name:          s.cfg.BankName,
			AccountName:   s.cfg.BankAccountName,
			AccountNumber: s.cfg.BankAccountNumber,
			BranchCode:    s.cfg.BankBranchCode,
		}
	case enums.PaymentMethodCOD:
		out.AutoCompleted = true
	}

	return out, nil
}

func (s *simulator) CheckStatus(ctx context.Context, req Request) (bool, error) {
	if req.Method != enums.PaymentMethodPayNow {
		return false, pkgerrors.New(pkgerrors.CodeStateConflict, "status checks only apply to paynow payments")
	}
	return s.policy.Confirmed(req), nil
}
