package handler

import (
	"net/http"
	"strconv"
	"time"

	"warehouse/internal/config"
	"warehouse/internal/domain/model"
	"warehouse/internal/middleware"
	"warehouse/internal/repository"
	"warehouse/internal/usecase"

	"github.com/labstack/echo/v4"
)

// OperationCreateRequest は入出庫共通の入力です。
type OperationCreateRequest struct {
	ProductID      int64  `json:"product_id"`
	Quantity       int64  `json:"quantity"`
	DocumentNumber string `json:"document_number"`
	SupplierName   string `json:"supplier_name"`
	Comment        string `json:"comment"`
	Date           string `json:"date"` // RFC3339 or YYYY-MM-DD、空なら受理時刻
}

type OperationCreateResponse struct {
	Success     bool  `json:"success"`
	EntryID     int64 `json:"entry_id"`
	NewQuantity int64 `json:"new_quantity"`
}

// /api/operations のAPI。登録はadmin限定ではなく認証済みなら誰でも。
type OperationHandler struct {
	stockUC  *usecase.StockUsecase
	reportUC *usecase.ReportUsecase
}

// DI
func NewOperationHandler(stockUC *usecase.StockUsecase, reportUC *usecase.ReportUsecase) *OperationHandler {
	return &OperationHandler{stockUC: stockUC, reportUC: reportUC}
}

func (h *OperationHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/api/operations")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))

	g.GET("", h.list)
	g.POST("/incoming", h.recordIncoming)
	g.POST("/outgoing", h.recordOutgoing)
}

func (h *OperationHandler) recordIncoming(c echo.Context) error {
	return h.record(c, model.OperationIncoming)
}

func (h *OperationHandler) recordOutgoing(c echo.Context) error {
	return h.record(c, model.OperationOutgoing)
}

func (h *OperationHandler) record(c echo.Context, opType model.OperationType) error {
	var req OperationCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var date *time.Time
	if req.Date != "" {
		d, err := parseDateParam(req.Date, false)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid date"})
		}
		date = d
	}

	out, err := h.stockUC.RecordMovement(c.Request().Context(), actorID, opType, usecase.RecordMovementInput{
		ProductID:      req.ProductID,
		Quantity:       req.Quantity,
		DocumentNumber: req.DocumentNumber,
		SupplierName:   req.SupplierName,
		Comment:        req.Comment,
		Date:           date,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, OperationCreateResponse{
		Success:     true,
		EntryID:     out.ID,
		NewQuantity: out.NewQuantity,
	})
}

func (h *OperationHandler) list(c echo.Context) error {
	var productID int64
	if v := c.QueryParam("productId"); v != "" {
		p, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid productId"})
		}
		productID = p
	}

	start, err := parseOptionalDate(c.QueryParam("startDate"), false)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid startDate"})
	}
	end, err := parseOptionalDate(c.QueryParam("endDate"), true)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid endDate"})
	}

	rows, err := h.reportUC.ListOperations(c.Request().Context(), usecase.OperationsFilterInput{
		Type:      c.QueryParam("type"),
		ProductID: productID,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// YYYY-MM-DDかRFC3339を受ける。endOfDayなら日付のみ指定を23:59:59に寄せる（期間終端を含めるため）。
func parseDateParam(s string, endOfDay bool) (*time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}

	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Second)
	}
	return &t, nil
}

func parseOptionalDate(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	return parseDateParam(s, endOfDay)
}
