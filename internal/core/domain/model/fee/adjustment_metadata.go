package fee

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
)

// ErrAdjustmentMetadataIsNotConstructed is returned when AdjustmentMetadata
// was not created through the NewAdjustmentMetadata constructor.
var ErrAdjustmentMetadataIsNotConstructed = errors.New(
	"AdjustmentMetadata must be created via NewAdjustmentMetadata constructor",
)

// AdjustmentMetadata is the reporting side record written alongside a fee
// adjustment: which enterprise charged which fee in which role. It is keyed
// by adjustment id and never read by the recomputation pipeline.
type AdjustmentMetadata struct {
	adjustmentID kernel.UUID
	enterpriseID kernel.UUID
	feeName      string
	feeType      string
	role         Role

	guard kernel.ConstructorGuard
}

// NewAdjustmentMetadata creates a validated metadata record for a fee
// adjustment.
func NewAdjustmentMetadata(
	adjustmentID kernel.UUID,
	enterpriseID kernel.UUID,
	feeName string,
	feeType string,
	role Role,
) (*AdjustmentMetadata, error) {
	if err := errors.Join(
		adjustmentID.Validate(),
		enterpriseID.Validate(),
		role.Validate(),
	); err != nil {
		return nil, err
	}

	return &AdjustmentMetadata{
		adjustmentID: adjustmentID,
		enterpriseID: enterpriseID,
		feeName:      feeName,
		feeType:      feeType,
		role:         role,
		guard:        kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the record was created through the constructor.
func (m *AdjustmentMetadata) Validate() error {
	if m == nil {
		return ErrAdjustmentMetadataIsNotConstructed
	}
	return m.guard.Validate(ErrAdjustmentMetadataIsNotConstructed)
}

// AdjustmentID returns the adjustment this record belongs to.
func (m *AdjustmentMetadata) AdjustmentID() kernel.UUID {
	return m.adjustmentID
}

// EnterpriseID returns the enterprise that charged the fee.
func (m *AdjustmentMetadata) EnterpriseID() kernel.UUID {
	return m.enterpriseID
}

// FeeName returns the fee's configured name at application time.
func (m *AdjustmentMetadata) FeeName() string {
	return m.feeName
}

// FeeType returns the fee type label at application time.
func (m *AdjustmentMetadata) FeeType() string {
	return m.feeType
}

// Role returns the enterprise role the fee was charged under.
func (m *AdjustmentMetadata) Role() Role {
	return m.role
}
