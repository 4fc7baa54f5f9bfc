package commands

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/errs"
	"kitchen/internal/pkg/guard"
)

var (
	ErrReportQualityIssueCommandIsNotConstructed = errors.New(
		"ReportQualityIssueCommand must be created via NewReportQualityIssueCommand constructor",
	)
	ErrSeverityIsInvalid = errors.New("severity must be one of minor, major, critical")
)

// Quality issue severities.
const (
	SeverityMinor    = "minor"
	SeverityMajor    = "major"
	SeverityCritical = "critical"
)

// ReportQualityIssueCommand records a preparation quality problem against an
// order, optionally pinned to one item.
type ReportQualityIssueCommand struct { //nolint:recvcheck //using for validation
	kitchenOrderID kernel.UUID
	itemID         *kernel.UUID
	severity       string
	note           string

	guard guard.ConstructorGuard
}

// NewReportQualityIssueCommand creates a validated quality report. itemID may
// be nil for order-level issues.
func NewReportQualityIssueCommand(
	kitchenOrderID kernel.UUID,
	itemID *kernel.UUID,
	severity string,
	note string,
) (ReportQualityIssueCommand, error) {
	cmd := ReportQualityIssueCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setKitchenOrderID(kitchenOrderID),
		cmd.setItemID(itemID),
		cmd.setSeverity(severity),
	); err != nil {
		return ReportQualityIssueCommand{}, err
	}

	cmd.note = note
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportQualityIssueCommand) Validate() error {
	return c.guard.Validate(ErrReportQualityIssueCommandIsNotConstructed)
}

// KitchenOrderID returns the order the issue concerns.
func (c ReportQualityIssueCommand) KitchenOrderID() kernel.UUID { return c.kitchenOrderID }

// ItemID returns the affected item, or nil for order-level issues.
func (c ReportQualityIssueCommand) ItemID() *kernel.UUID { return c.itemID }

// Severity returns the graded severity.
func (c ReportQualityIssueCommand) Severity() string { return c.severity }

// Note returns the free-form description.
func (c ReportQualityIssueCommand) Note() string { return c.note }

func (c *ReportQualityIssueCommand) setKitchenOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("kitchenOrderID", err)
	}
	c.kitchenOrderID = id
	return nil
}

func (c *ReportQualityIssueCommand) setItemID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("itemID", err)
	}
	c.itemID = id
	return nil
}

func (c *ReportQualityIssueCommand) setSeverity(severity string) error {
	switch severity {
	case SeverityMinor, SeverityMajor, SeverityCritical:
		c.severity = severity
		return nil
	default:
		return ErrSeverityIsInvalid
	}
}
