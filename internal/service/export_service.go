package service

import (
	"context"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/noc-fault-service/internal/domain"
	"github.com/spec-kit/noc-fault-service/internal/repository"
)

// ExportService renders fault listings as a spreadsheet. It reuses the exact
// filter composition of the listing path and exports the stored severity and
// pending values, without live recomputation.
type ExportService struct {
	faults      repository.FaultRepository
	customers   repository.CustomerRepository
	departments repository.DepartmentRepository
}

// NewExportService constructs the service.
func NewExportService(faults repository.FaultRepository, customers repository.CustomerRepository, departments repository.DepartmentRepository) *ExportService {
	return &ExportService{faults: faults, customers: customers, departments: departments}
}

const exportSheet = "Faults"

var exportHeaders = []string{
	"Ticket Number", "Description", "Type", "Location", "Owner",
	"Status", "Severity", "Pending Hours", "Department", "Company",
	"Circuit ID", "Created At",
}

// ExportRow is one spreadsheet line for a fault.
type ExportRow struct {
	Fault          domain.Fault
	DepartmentName string
	Company        string
	CircuitID      string
}

// ExportFaults builds the workbook for all faults matching the criteria.
func (s *ExportService) ExportFaults(ctx context.Context, criteria FaultSearchCriteria) (*excelize.File, error) {
	var customerIDs []string
	if search := strings.TrimSpace(criteria.SearchText); search != "" {
		ids, err := s.customers.SearchIDs(ctx, search)
		if err != nil {
			return nil, err
		}
		customerIDs = ids
	}

	faults, err := s.faults.ListWithFilter(ctx, ComposeFaultFilter(criteria, customerIDs))
	if err != nil {
		return nil, err
	}

	rows, err := s.buildRows(ctx, faults)
	if err != nil {
		return nil, err
	}
	return renderWorkbook(rows)
}

func (s *ExportService) buildRows(ctx context.Context, faults []domain.Fault) ([]ExportRow, error) {
	deptNames := map[string]string{}
	customers := map[string]*domain.Customer{}

	rows := make([]ExportRow, 0, len(faults))
	for _, fault := range faults {
		row := ExportRow{Fault: fault}

		if name, ok := deptNames[fault.DepartmentID]; ok {
			row.DepartmentName = name
		} else if dept, err := s.departments.GetByID(ctx, fault.DepartmentID); err == nil {
			deptNames[fault.DepartmentID] = dept.Name
			row.DepartmentName = dept.Name
		}

		customer, ok := customers[fault.CustomerID]
		if !ok {
			if loaded, err := s.customers.GetByID(ctx, fault.CustomerID); err == nil {
				customer = loaded
			}
			customers[fault.CustomerID] = customer
		}
		if customer != nil {
			row.Company = customer.Company
			row.CircuitID = customer.CircuitID
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func renderWorkbook(rows []ExportRow) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		values := exportCells(row)
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(exportSheet, cell, value); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

func exportCells(row ExportRow) []any {
	return []any{
		row.Fault.TicketNumber,
		row.Fault.Description,
		row.Fault.Type,
		row.Fault.Location,
		row.Fault.Owner,
		string(row.Fault.Status),
		string(row.Fault.Severity),
		row.Fault.PendingHours,
		row.DepartmentName,
		row.Company,
		row.CircuitID,
		row.Fault.CreatedAt.Format(time.RFC3339),
	}
}
