// Package fee contains the enterprise fee definition and the reporting
// metadata attached to the adjustments it produces. Fee configuration is
// owned by an upstream collaborator; this package consumes it read-only.
package fee

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"orders/internal/core/domain/model/calculator"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
)

var (
	// ErrEnterpriseFeeIsNotConstructed is returned when an EnterpriseFee was
	// not created through the NewEnterpriseFee constructor.
	ErrEnterpriseFeeIsNotConstructed = errors.New("EnterpriseFee must be created via NewEnterpriseFee constructor")
)

// Role is the business role an enterprise plays in the trading relationship
// a fee is charged under.
type Role string

const (
	RoleSupplier    Role = "supplier"
	RoleDistributor Role = "distributor"
	RoleCoordinator Role = "coordinator"
)

// Validate checks the role against the closed set.
func (r Role) Validate() error {
	switch r {
	case RoleSupplier, RoleDistributor, RoleCoordinator:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"role is invalid",
		fmt.Errorf("%q is not a valid enterprise role", string(r)),
	)
}

// String returns the persisted name of the role.
func (r Role) String() string {
	return string(r)
}

// EnterpriseFee is a configurable charge tied to an enterprise. It is an
// adjustment source: adjustments it originates recompute through its
// calculator. A fee may inherit the tax category of the product it is
// charged against instead of carrying its own.
type EnterpriseFee struct {
	id                  kernel.UUID
	enterpriseID        kernel.UUID
	enterpriseName      string
	name                string
	feeType             string
	calculator          calculator.Calculator
	inheritsTaxCategory bool
	taxCategoryID       *kernel.UUID

	guard kernel.ConstructorGuard
}

// NewEnterpriseFee creates a validated enterprise fee definition.
// taxCategoryID may be nil when the fee inherits the product's category.
func NewEnterpriseFee(
	id kernel.UUID,
	enterpriseID kernel.UUID,
	enterpriseName string,
	name string,
	feeType string,
	calc calculator.Calculator,
	inheritsTaxCategory bool,
	taxCategoryID *kernel.UUID,
) (*EnterpriseFee, error) {
	f := &EnterpriseFee{
		inheritsTaxCategory: inheritsTaxCategory,
		taxCategoryID:       taxCategoryID,
		guard:               kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		f.setID(id),
		f.setEnterpriseID(enterpriseID),
		f.setEnterpriseName(enterpriseName),
		f.setName(name),
		f.setFeeType(feeType),
		f.setCalculator(calc),
	); err != nil {
		return nil, err
	}

	return f, nil
}

// Validate ensures the fee was created through NewEnterpriseFee.
func (f *EnterpriseFee) Validate() error {
	if f == nil {
		return ErrEnterpriseFeeIsNotConstructed
	}
	return f.guard.Validate(ErrEnterpriseFeeIsNotConstructed)
}

// ID returns the fee's unique identifier.
func (f *EnterpriseFee) ID() kernel.UUID {
	return f.id
}

// EnterpriseID returns the enterprise charging the fee.
func (f *EnterpriseFee) EnterpriseID() kernel.UUID {
	return f.enterpriseID
}

// EnterpriseName returns the charging enterprise's display name.
func (f *EnterpriseFee) EnterpriseName() string {
	return f.enterpriseName
}

// Name returns the fee's configured name.
func (f *EnterpriseFee) Name() string {
	return f.name
}

// FeeType returns the configured fee type label, e.g. "packing" or "admin".
func (f *EnterpriseFee) FeeType() string {
	return f.feeType
}

// InheritsTaxCategory reports whether adjustments built from this fee take
// the tax category of the product they are charged against.
func (f *EnterpriseFee) InheritsTaxCategory() bool {
	return f.inheritsTaxCategory
}

// TaxCategoryID returns the fee's own tax category, nil when inherited.
func (f *EnterpriseFee) TaxCategoryID() *kernel.UUID {
	return f.taxCategoryID
}

// ComputeAmount implements adjustment.Source through the fee's calculator.
func (f *EnterpriseFee) ComputeAmount(target calculator.Calculable) (decimal.Decimal, error) {
	return f.calculator.Compute(target)
}

func (f *EnterpriseFee) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	f.id = id
	return nil
}

func (f *EnterpriseFee) setEnterpriseID(enterpriseID kernel.UUID) error {
	if err := enterpriseID.Validate(); err != nil {
		return err
	}
	f.enterpriseID = enterpriseID
	return nil
}

func (f *EnterpriseFee) setEnterpriseName(enterpriseName string) error {
	if enterpriseName == "" {
		return errs.NewValueIsRequiredError("enterprise name")
	}
	f.enterpriseName = enterpriseName
	return nil
}

func (f *EnterpriseFee) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("fee name")
	}
	f.name = name
	return nil
}

func (f *EnterpriseFee) setFeeType(feeType string) error {
	if feeType == "" {
		return errs.NewValueIsRequiredError("fee type")
	}
	f.feeType = feeType
	return nil
}

func (f *EnterpriseFee) setCalculator(calc calculator.Calculator) error {
	if calc == nil {
		return errs.NewValueIsRequiredError("fee calculator")
	}
	f.calculator = calc
	return nil
}
