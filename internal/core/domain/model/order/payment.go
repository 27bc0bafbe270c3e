package order

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

// PaymentMethod is how the customer pays on delivery or at checkout.
type PaymentMethod string

const (
	CreditCard PaymentMethod = "credit_card"
	DebitCard  PaymentMethod = "debit_card"
	Cash       PaymentMethod = "cash"
)

const (
	maskedCardPrefix = "**** **** **** "
	redactedCVV      = "***"
)

var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")

var expirationPattern = regexp.MustCompile(`^\d{2}/\d{2}$`)

// PaymentDetails is the raw payment input. It is only ever held by callers;
// NewPayment turns it into a Payment that keeps no recoverable card data.
type PaymentDetails struct {
	Method         PaymentMethod
	CardNumber     string
	CardHolder     string
	ExpirationDate string
	CVV            string
	BillingAddress string
}

// Payment is an immutable value object. The card number is truncated to its last four
// digits at construction and the CVV is replaced by a redaction token that is never
// exposed or persisted.
type Payment struct {
	method         PaymentMethod
	cardNumber     string
	cardHolder     string
	expirationDate string
	cvv            string
	billingAddress string

	guard guard.ConstructorGuard
}

// NewPayment masks the sensitive fields before validating, so even a rejected
// input never lives on in a Payment value. A cash payment keeps only its method.
func NewPayment(d PaymentDetails) (Payment, error) {
	if d.Method == Cash {
		d = PaymentDetails{Method: Cash}
	}

	p := Payment{
		method:         d.Method,
		cardNumber:     MaskCardNumber(d.CardNumber),
		cardHolder:     strings.TrimSpace(d.CardHolder),
		expirationDate: strings.TrimSpace(d.ExpirationDate),
		billingAddress: strings.TrimSpace(d.BillingAddress),
		guard:          guard.NewConstructorGuard(),
	}
	if d.CVV != "" {
		p.cvv = redactedCVV
	}

	if err := errs.Validate("payment", p.validateFields()...); err != nil {
		return Payment{}, err
	}

	return p, nil
}

// RestorePayment rebuilds a payment from persisted state, where the card number is
// already masked. Unmasked input is masked again.
func RestorePayment(method PaymentMethod, maskedCardNumber, cardHolder, expirationDate, billingAddress string) (Payment, error) {
	return NewPayment(PaymentDetails{
		Method:         method,
		CardNumber:     maskedCardNumber,
		CardHolder:     cardHolder,
		ExpirationDate: expirationDate,
		BillingAddress: billingAddress,
	})
}

// MaskCardNumber strips whitespace and keeps only the last four characters, in the
// form "**** **** **** NNNN". An empty input stays empty.
func MaskCardNumber(cardNumber string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, cardNumber)
	if cleaned == "" {
		return ""
	}

	runes := []rune(cleaned)
	if len(runes) > 4 {
		runes = runes[len(runes)-4:]
	}
	return maskedCardPrefix + string(runes)
}

func (p Payment) Validate() error {
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

func (p Payment) Method() PaymentMethod  { return p.method }
func (p Payment) CardNumber() string     { return p.cardNumber }
func (p Payment) CardHolder() string     { return p.cardHolder }
func (p Payment) ExpirationDate() string { return p.expirationDate }
func (p Payment) BillingAddress() string { return p.billingAddress }

// HadCVV reports whether a security code was supplied. The code itself is not kept.
func (p Payment) HadCVV() bool {
	return p.cvv != ""
}

// LastFour returns the visible digits of the card number, or "" for cash payments.
func (p Payment) LastFour() string {
	return strings.TrimPrefix(p.cardNumber, maskedCardPrefix)
}

func (p Payment) validateFields() []error {
	var problems []error
	switch p.method {
	case Cash:
		return nil
	case CreditCard, DebitCard:
	default:
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"payment method",
			fmt.Errorf("%q is not one of credit_card, debit_card, cash", p.method),
		))
	}

	if p.cardNumber == "" {
		problems = append(problems, errs.NewValueIsRequiredError("card number"))
	}
	if p.cardHolder == "" {
		problems = append(problems, errs.NewValueIsRequiredError("card holder"))
	}
	if !expirationPattern.MatchString(p.expirationDate) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"expiration date",
			fmt.Errorf("%q is not in MM/YY format", p.expirationDate),
		))
	}
	return problems
}
