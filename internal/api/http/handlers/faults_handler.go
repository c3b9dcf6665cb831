package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/noc-fault-service/internal/api/dto"
	"github.com/spec-kit/noc-fault-service/internal/auth"
	"github.com/spec-kit/noc-fault-service/internal/domain"
	"github.com/spec-kit/noc-fault-service/internal/service"
	apperrors "github.com/spec-kit/noc-fault-service/pkg/util"
)

// FaultsHandler manages fault endpoints.
type FaultsHandler struct {
	faults *service.FaultService
	export *service.ExportService
}

// NewFaultsHandler constructs handler.
func NewFaultsHandler(faults *service.FaultService, export *service.ExportService) *FaultsHandler {
	return &FaultsHandler{faults: faults, export: export}
}

// CreateFault POST /faults.
func (h *FaultsHandler) CreateFault(c *fiber.Ctx) error {
	var req dto.CreateFaultRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	fault, err := h.faults.CreateFault(c.UserContext(), service.FaultCreateInput{
		Description:  req.Description,
		Type:         req.Type,
		Location:     req.Location,
		Owner:        req.Owner,
		Status:       domain.FaultStatus(req.Status),
		PendingHours: req.PendingHours,
		CustomerID:   req.CustomerID,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": faultResponse(fault)})
}

// ListFaults GET /faults.
func (h *FaultsHandler) ListFaults(c *fiber.Ctx) error {
	faults, err := h.faults.ListFaults(c.UserContext(), searchCriteria(c))
	if err != nil {
		return err
	}
	items := make([]dto.FaultResponse, 0, len(faults))
	for i := range faults {
		items = append(items, faultResponse(&faults[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetFault GET /faults/:id.
func (h *FaultsHandler) GetFault(c *fiber.Ctx) error {
	detail, err := h.faults.GetFaultDetail(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": faultDetailResponse(detail)})
}

// UpdateFault PUT /faults/:id.
func (h *FaultsHandler) UpdateFault(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateFaultRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	patch := service.FaultPatch{
		Description:  req.Description,
		Type:         req.Type,
		Location:     req.Location,
		Owner:        req.Owner,
		CustomerID:   req.CustomerID,
		DepartmentID: req.DepartmentID,
		PendingHours: req.PendingHours,
		Status:       statusPatch(req.Status),
	}

	fault, err := h.faults.UpdateFault(c.UserContext(), c.Params("id"), patch, actor, req.Note, c.Get("Idempotency-Key"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": faultResponse(fault)})
}

// AddNote POST /faults/:id/notes.
func (h *FaultsHandler) AddNote(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	note, err := h.faults.AddNote(c.UserContext(), c.Params("id"), req.Content, actor)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": noteResponse(note)})
}

// ListNotes GET /faults/:id/notes.
func (h *FaultsHandler) ListNotes(c *fiber.Ctx) error {
	notes, err := h.faults.ListNotes(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.NoteResponse, 0, len(notes))
	for i := range notes {
		items = append(items, noteResponse(&notes[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListHistory GET /faults/:id/history.
func (h *FaultsHandler) ListHistory(c *fiber.Ctx) error {
	history, err := h.faults.ListHistory(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.HistoryResponse, 0, len(history))
	for _, entry := range history {
		items = append(items, dto.HistoryResponse{
			ID:             entry.ID,
			PreviousStatus: string(entry.PreviousStatus),
			NewStatus:      string(entry.NewStatus),
			ActorID:        entry.ActorID,
			ActorName:      entry.ActorName,
			Note:           entry.Note,
			CreatedAt:      entry.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// ExportFaults GET /faults/export. Same filter semantics as ListFaults;
// exports the stored severity and pending values.
func (h *FaultsHandler) ExportFaults(c *fiber.Ctx) error {
	workbook, err := h.export.ExportFaults(c.UserContext(), searchCriteria(c))
	if err != nil {
		return err
	}
	buf, err := workbook.WriteToBuffer()
	if err != nil {
		return apperrors.NewPersistenceError(err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="faults.xlsx"`)
	return c.Send(buf.Bytes())
}

func searchCriteria(c *fiber.Ctx) service.FaultSearchCriteria {
	return service.FaultSearchCriteria{
		Status:       c.Query("status"),
		DepartmentID: c.Query("department_id"),
		Severity:     c.Query("severity"),
		SearchText:   c.Query("search"),
	}
}

func statusPatch(p domain.Patch[string]) domain.Patch[domain.FaultStatus] {
	if p.IsNull() {
		return domain.PatchNull[domain.FaultStatus]()
	}
	if v, ok := p.Value(); ok {
		return domain.PatchValue(domain.FaultStatus(v))
	}
	return domain.Patch[domain.FaultStatus]{}
}

func faultResponse(fault *domain.Fault) dto.FaultResponse {
	return dto.FaultResponse{
		ID:           fault.ID,
		TicketNumber: fault.TicketNumber,
		Description:  fault.Description,
		Type:         fault.Type,
		Location:     fault.Location,
		Owner:        fault.Owner,
		Severity:     string(fault.Severity),
		Status:       string(fault.Status),
		PendingHours: fault.PendingHours,
		CustomerID:   fault.CustomerID,
		DepartmentID: fault.DepartmentID,
		ResolvedAt:   fault.ResolvedAt,
		ClosedAt:     fault.ClosedAt,
		CreatedAt:    fault.CreatedAt,
		UpdatedAt:    fault.UpdatedAt,
	}
}

func faultDetailResponse(detail *service.FaultDetail) dto.FaultDetailResponse {
	resp := dto.FaultDetailResponse{
		FaultResponse:  faultResponse(&detail.Fault),
		Notes:          make([]dto.NoteResponse, 0, len(detail.Notes)),
		ResolvedByName: detail.ResolvedByName,
		ClosedByName:   detail.ClosedByName,
	}
	if detail.Customer != nil {
		customer := customerResponse(detail.Customer)
		resp.Customer = &customer
	}
	if detail.Department != nil {
		resp.Department = &dto.DepartmentResponse{ID: detail.Department.ID, Name: detail.Department.Name}
	}
	for i := range detail.Notes {
		resp.Notes = append(resp.Notes, noteResponse(&detail.Notes[i]))
	}
	return resp
}

func noteResponse(note *domain.FaultNote) dto.NoteResponse {
	return dto.NoteResponse{
		ID:           note.ID,
		FaultID:      note.FaultID,
		Content:      note.Content,
		AuthorID:     note.AuthorID,
		AuthorName:   note.AuthorName,
		DepartmentID: note.DepartmentID,
		CreatedAt:    note.CreatedAt,
	}
}

func customerResponse(customer *domain.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:         customer.ID,
		Company:    customer.Company,
		CircuitID:  customer.CircuitID,
		Type:       customer.Type,
		Location:   customer.Location,
		IPAddress:  customer.IPAddress,
		PopSite:    customer.PopSite,
		Email:      customer.Email,
		SwitchInfo: customer.SwitchInfo,
		Owner:      customer.Owner,
	}
}
