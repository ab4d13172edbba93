package commands

import (
	"errors"

	"orders/internal/core/domain/model/calculator"
	"orders/internal/core/domain/model/fee"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/guard"
)

var (
	ErrApplyEnterpriseFeeCommandIsNotConstructed = errors.New(
		"ApplyEnterpriseFeeCommand must be created via NewApplyEnterpriseFeeCommand constructor",
	)
	ErrEnterpriseNameIsRequired = errors.New("enterprise name is required")
	ErrFeeNameIsRequired        = errors.New("fee name is required")
	ErrFeeTypeIsRequired        = errors.New("fee type is required")
)

// ApplyEnterpriseFeeCommand represents a request to materialize an enterprise
// fee definition into an adjustment on one line item or on the whole order.
// The fee definition travels with the command: identity, labeling data, the
// calculator configuration and the tax category policy.
//
// Example:
//
//	cmd, err := NewApplyEnterpriseFeeCommand(
//	    orderID, &lineItemID,
//	    feeID, enterpriseID, "Sunny Fields", "standard packing", "packing",
//	    fee.RoleDistributor,
//	    calculator.KindFlatPercentItemTotal,
//	    calculator.Params{Percent: decimal.NewFromInt(10)},
//	    true, nil,
//	)
type ApplyEnterpriseFeeCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	lineItemID *kernel.UUID

	feeID          kernel.UUID
	enterpriseID   kernel.UUID
	enterpriseName string
	feeName        string
	feeType        string
	role           fee.Role

	calculatorKind   calculator.Kind
	calculatorParams calculator.Params

	inheritsTaxCategory bool
	taxCategoryID       *kernel.UUID

	guard guard.ConstructorGuard
}

// NewApplyEnterpriseFeeCommand creates a command to apply an enterprise fee.
// A nil lineItemID targets the whole order. Validates identifiers, labeling
// data and the role.
func NewApplyEnterpriseFeeCommand(
	orderID kernel.UUID,
	lineItemID *kernel.UUID,
	feeID kernel.UUID,
	enterpriseID kernel.UUID,
	enterpriseName string,
	feeName string,
	feeType string,
	role fee.Role,
	calculatorKind calculator.Kind,
	calculatorParams calculator.Params,
	inheritsTaxCategory bool,
	taxCategoryID *kernel.UUID,
) (ApplyEnterpriseFeeCommand, error) {
	cmd := ApplyEnterpriseFeeCommand{
		calculatorKind:      calculatorKind,
		calculatorParams:    calculatorParams,
		inheritsTaxCategory: inheritsTaxCategory,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setLineItemID(lineItemID),
		cmd.setFeeID(feeID),
		cmd.setEnterpriseID(enterpriseID),
		cmd.setEnterpriseName(enterpriseName),
		cmd.setFeeName(feeName),
		cmd.setFeeType(feeType),
		cmd.setRole(role),
		cmd.setTaxCategoryID(taxCategoryID),
	); err != nil {
		return ApplyEnterpriseFeeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrApplyEnterpriseFeeCommandIsNotConstructed if validation fails.
func (c ApplyEnterpriseFeeCommand) Validate() error {
	return c.guard.Validate(ErrApplyEnterpriseFeeCommandIsNotConstructed)
}

// OrderID returns the identifier of the order the fee applies to.
func (c ApplyEnterpriseFeeCommand) OrderID() kernel.UUID {
	return c.orderID
}

// LineItemID returns the targeted line item, or nil for a whole-order fee.
func (c ApplyEnterpriseFeeCommand) LineItemID() *kernel.UUID {
	return c.lineItemID
}

// FeeID returns the identifier of the fee definition.
func (c ApplyEnterpriseFeeCommand) FeeID() kernel.UUID {
	return c.feeID
}

// EnterpriseID returns the enterprise charging the fee.
func (c ApplyEnterpriseFeeCommand) EnterpriseID() kernel.UUID {
	return c.enterpriseID
}

// EnterpriseName returns the display name of the charging enterprise.
func (c ApplyEnterpriseFeeCommand) EnterpriseName() string {
	return c.enterpriseName
}

// FeeName returns the name of the fee definition.
func (c ApplyEnterpriseFeeCommand) FeeName() string {
	return c.feeName
}

// FeeType returns the fee type label, e.g. "packing" or "admin".
func (c ApplyEnterpriseFeeCommand) FeeType() string {
	return c.feeType
}

// Role returns the role the enterprise plays for this order.
func (c ApplyEnterpriseFeeCommand) Role() fee.Role {
	return c.role
}

// CalculatorKind returns the configured calculator strategy.
func (c ApplyEnterpriseFeeCommand) CalculatorKind() calculator.Kind {
	return c.calculatorKind
}

// CalculatorParams returns the configured calculator parameters.
func (c ApplyEnterpriseFeeCommand) CalculatorParams() calculator.Params {
	return c.calculatorParams
}

// InheritsTaxCategory reports whether the fee takes the tax category of the
// product it is charged on.
func (c ApplyEnterpriseFeeCommand) InheritsTaxCategory() bool {
	return c.inheritsTaxCategory
}

// TaxCategoryID returns the fee's own tax category, if any.
func (c ApplyEnterpriseFeeCommand) TaxCategoryID() *kernel.UUID {
	return c.taxCategoryID
}

func (c *ApplyEnterpriseFeeCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ApplyEnterpriseFeeCommand) setLineItemID(lineItemID *kernel.UUID) error {
	if lineItemID != nil {
		if err := lineItemID.Validate(); err != nil {
			return err
		}
	}

	c.lineItemID = lineItemID
	return nil
}

func (c *ApplyEnterpriseFeeCommand) setFeeID(feeID kernel.UUID) error {
	if err := feeID.Validate(); err != nil {
		return err
	}

	c.feeID = feeID
	return nil
}

func (c *ApplyEnterpriseFeeCommand) setEnterpriseID(enterpriseID kernel.UUID) error {
	if err := enterpriseID.Validate(); err != nil {
		return err
	}

	c.enterpriseID = enterpriseID
	return nil
}

func (c *ApplyEnterpriseFeeCommand) setEnterpriseName(enterpriseName string) error {
	if enterpriseName == "" {
		return ErrEnterpriseNameIsRequired
	}

	c.enterpriseName = enterpriseName
	return nil
}

func (c *ApplyEnterpriseFeeCommand) setFeeName(feeName string) error {
	if feeName == "" {
		return ErrFeeNameIsRequired
	}

	c.feeName = feeName
	return nil
}

func (c *ApplyEnterpriseFeeCommand) setFeeType(feeType string) error {
	if feeType == "" {
		return ErrFeeTypeIsRequired
	}

	c.feeType = feeType
	return nil
}

func (c *ApplyEnterpriseFeeCommand) setRole(role fee.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	c.role = role
	return nil
}

func (c *ApplyEnterpriseFeeCommand) setTaxCategoryID(taxCategoryID *kernel.UUID) error {
	if taxCategoryID != nil {
		if err := taxCategoryID.Validate(); err != nil {
			return err
		}
	}

	c.taxCategoryID = taxCategoryID
	return nil
}
