// Package movement decides whether a send, request, top-up or bill payment may be
// submitted. Evaluation is pure: no I/O and no state beyond the policy's clock.
package movement

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finsec/cli/internal/models"
)

// Policy holds the thresholds of the money-movement rules
type Policy struct {
	SendWarn    decimal.Decimal
	RequestWarn decimal.Decimal
	TopUpWarn   decimal.Decimal
	RequestMin  decimal.Decimal
	TopUpMin    decimal.Decimal

	// Now is the clock of the duplicate-request rule; time.Now when nil.
	Now func() time.Time
}

// DefaultPolicy returns the thresholds the app ships with
func DefaultPolicy() Policy {
	return Policy{
		SendWarn:    decimal.NewFromInt(1000),
		RequestWarn: decimal.NewFromInt(2000),
		TopUpWarn:   decimal.NewFromInt(10000),
		RequestMin:  decimal.NewFromInt(1),
		TopUpMin:    decimal.NewFromInt(10),
	}
}

// evaluation is the state shared by the rules of one Evaluate call
type evaluation struct {
	req    Request
	cp     *Counterparty
	amount decimal.Decimal
}

type rule func(p Policy, e *evaluation) (Decision, bool, error)

// Block rules run first and the first hit wins; warn rules only run when nothing blocked.
var (
	blockRules = []rule{
		requireCounterparty,
		checkEligibility,
		checkSettled,
		checkAmount,
		checkRemainingLimit,
	}
	warnRules = []rule{
		checkSoftCeiling,
		checkDuplicateRequest,
	}
)

// Evaluate applies the rules to req. Malformed user input yields a Block decision; the
// error is reserved for requests the caller built incorrectly.
func (p Policy) Evaluate(req Request) (Decision, error) {
	if !req.Kind.Valid() {
		return Decision{}, fmt.Errorf("unknown movement kind %q", req.Kind)
	}

	e := &evaluation{req: req, cp: req.Counterparty}
	for _, group := range [][]rule{blockRules, warnRules} {
		for _, r := range group {
			d, hit, err := r(p, e)
			if err != nil {
				return Decision{}, err
			}
			if hit {
				return d, nil
			}
		}
	}
	return allow(), nil
}

func (p Policy) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func requireCounterparty(_ Policy, e *evaluation) (Decision, bool, error) {
	if e.cp != nil {
		return Decision{}, false, nil
	}
	switch e.req.Kind {
	case KindSend:
		return block("Recipient required", "Please select who you want to send money to."), true, nil
	case KindRequest:
		return block("Contact required", "Please select who you want to request money from."), true, nil
	case KindTopUp:
		return block("Payment method required", "Please select a payment method."), true, nil
	default:
		return block("Bill required", "Please select a bill to pay."), true, nil
	}
}

func checkEligibility(_ Policy, e *evaluation) (Decision, bool, error) {
	switch e.cp.Status {
	case models.ContactBlocked:
		detail := "This account cannot receive money at this time. Please contact support."
		if e.req.Kind == KindRequest {
			detail = "This account cannot receive requests at this time. Please contact support."
		}
		return block("Account is blocked", detail), true, nil
	case models.ContactInactive:
		return block("Account is inactive",
			"This account is currently inactive. Please select another recipient."), true, nil
	case models.ContactActive:
		return Decision{}, false, nil
	case "":
		// cards and bills carry no contact status
		if e.req.Kind == KindTopUp || e.req.Kind == KindBillPay {
			return Decision{}, false, nil
		}
	}
	return Decision{}, false, fmt.Errorf("counterparty %q has unknown status %q", e.cp.ID, e.cp.Status)
}

func checkSettled(_ Policy, e *evaluation) (Decision, bool, error) {
	if e.req.Kind == KindBillPay && e.cp.BillStatus == models.BillPaid {
		return block("Bill already paid",
			"This bill has already been paid and cannot be paid again."), true, nil
	}
	return Decision{}, false, nil
}

func checkAmount(p Policy, e *evaluation) (Decision, bool, error) {
	amount, ok := ParseAmount(e.req.Amount)
	if !ok || !amount.IsPositive() {
		return block("Invalid amount", "Please enter a valid amount greater than 0."), true, nil
	}
	e.amount = amount

	switch e.req.Kind {
	case KindTopUp:
		if amount.LessThan(p.TopUpMin) {
			return block("Minimum amount not met",
				fmt.Sprintf("The minimum top-up amount is %s.", dollars(p.TopUpMin))), true, nil
		}
	case KindRequest:
		if amount.LessThan(p.RequestMin) {
			return block("Minimum amount not met",
				fmt.Sprintf("The minimum request amount is %s.", dollars(p.RequestMin))), true, nil
		}
	}
	return Decision{}, false, nil
}

func checkRemainingLimit(p Policy, e *evaluation) (Decision, bool, error) {
	limit := e.cp.Limit
	if limit == nil {
		return Decision{}, false, nil
	}
	if !limit.Daily.IsPositive() {
		return Decision{}, false, fmt.Errorf("counterparty %q has a limit without a daily ceiling", e.cp.ID)
	}

	remaining := limit.RemainingOn(p.now())
	if e.amount.GreaterThan(remaining) {
		message := "Daily limit exceeded"
		if e.req.Kind == KindRequest {
			message = "Daily request limit exceeded"
		}
		return block(message, "Remaining limit for today: "+dollars(remaining)), true, nil
	}
	return Decision{}, false, nil
}

func checkSoftCeiling(p Policy, e *evaluation) (Decision, bool, error) {
	switch e.req.Kind {
	case KindSend:
		if e.amount.GreaterThan(p.SendWarn) {
			return warn("Amount exceeds recommended limit",
				"Additional verification may be required."), true, nil
		}
	case KindRequest:
		if e.amount.GreaterThan(p.RequestWarn) {
			return warn("Large request amount",
				fmt.Sprintf("Requests over %s may require additional verification.", dollars(p.RequestWarn))), true, nil
		}
	case KindTopUp:
		if e.amount.GreaterThan(p.TopUpWarn) {
			return warn("Large top-up amount",
				fmt.Sprintf("Amounts over %s may require additional verification.", dollars(p.TopUpWarn))), true, nil
		}
	}
	return Decision{}, false, nil
}

func checkDuplicateRequest(p Policy, e *evaluation) (Decision, bool, error) {
	if e.req.Kind != KindRequest || e.cp.LastRequest.IsZero() {
		return Decision{}, false, nil
	}
	if sameDay(e.cp.LastRequest, p.now()) {
		return warn("Multiple requests today",
			"You have already requested money from this contact today."), true, nil
	}
	return Decision{}, false, nil
}

func sameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// dollars prints whole amounts without cents: $1,000 but $12.50
func dollars(d decimal.Decimal) string {
	return strings.TrimSuffix(models.FormatAmount(d), ".00")
}
