package handler

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"warehouse/internal/config"
	"warehouse/internal/middleware"
	"warehouse/internal/repository"
	"warehouse/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/reports のAPI。全部読み取り専用。
type ReportHandler struct {
	uc *usecase.ReportUsecase
}

// DI
func NewReportHandler(uc *usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/api/reports")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))

	g.GET("/current-stock", h.currentStock)
	g.GET("/low-stock", h.lowStock)
	g.GET("/operations", h.operations)
	g.GET("/product-movement", h.productMovement)
	g.GET("/export-csv", h.exportCSV)
}

func (h *ReportHandler) currentStock(c echo.Context) error {
	rows, err := h.uc.CurrentStock(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) lowStock(c echo.Context) error {
	rows, err := h.uc.LowStock(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) operations(c echo.Context) error {
	start, err := parseOptionalDate(c.QueryParam("startDate"), false)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid startDate"})
	}
	end, err := parseOptionalDate(c.QueryParam("endDate"), true)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid endDate"})
	}

	rows, err := h.uc.OperationsInPeriod(c.Request().Context(), start, end)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) productMovement(c echo.Context) error {
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

	rows, err := h.uc.ProductMovement(c.Request().Context(), productID, start, end)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// 表示中のレポートをCSVで落とす。reportTypeで出し分け。
func (h *ReportHandler) exportCSV(c echo.Context) error {
	ctx := c.Request().Context()
	reportType := c.QueryParam("reportType")

	var header []string
	var records [][]string

	switch reportType {
	case "current-stock", "low-stock":
		var rows []repository.ProductRow
		var err error
		if reportType == "current-stock" {
			rows, err = h.uc.CurrentStock(ctx)
		} else {
			rows, err = h.uc.LowStock(ctx)
		}
		if err != nil {
			return writeError(c, err)
		}

		header = []string{"id", "name", "category", "location", "min_quantity", "current_quantity"}
		for _, r := range rows {
			records = append(records, []string{
				strconv.FormatInt(r.ID, 10),
				r.Name,
				r.CategoryName,
				r.Location,
				strconv.FormatInt(r.MinQuantity, 10),
				strconv.FormatInt(r.CurrentQuantity, 10),
			})
		}

	case "operations", "product-movement":
		start, err := parseOptionalDate(c.QueryParam("startDate"), false)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid startDate"})
		}
		end, err := parseOptionalDate(c.QueryParam("endDate"), true)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid endDate"})
		}

		var rows []repository.OperationRow
		if reportType == "operations" {
			rows, err = h.uc.OperationsInPeriod(ctx, start, end)
		} else {
			var productID int64
			if v := c.QueryParam("productId"); v != "" {
				productID, err = strconv.ParseInt(v, 10, 64)
				if err != nil {
					return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid productId"})
				}
			}
			rows, err = h.uc.ProductMovement(ctx, productID, start, end)
		}
		if err != nil {
			return writeError(c, err)
		}

		header = []string{"date", "type", "product", "quantity", "document_number", "supplier_name", "user", "comment"}
		for _, r := range rows {
			records = append(records, []string{
				r.Date.Format("2006-01-02 15:04:05"),
				string(r.Type),
				r.ProductName,
				strconv.FormatInt(r.Quantity, 10),
				r.DocumentNumber,
				r.SupplierName,
				r.UserLogin,
				r.Comment,
			})
		}

	default:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid reportType"})
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	res.Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+reportType+`.csv"`)
	res.WriteHeader(http.StatusOK)

	w := csv.NewWriter(res)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(records); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
