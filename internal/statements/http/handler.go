package statementhttp

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/balanza-app/balanza/internal/observability"
	"github.com/balanza-app/balanza/internal/platform/httpx"
	"github.com/balanza-app/balanza/internal/statements"
	"github.com/balanza-app/balanza/internal/statements/export"
)

const dateLayout = "2006-01-02"

// Handler serves the derived financial statements.
type Handler struct {
	service  *statements.Service
	board    *statements.ResultBoard
	logger   *slog.Logger
	metrics  *observability.Metrics
	validate *validator.Validate
}

// NewHandler constructs the statements HTTP handler.
func NewHandler(service *statements.Service, logger *slog.Logger, metrics *observability.Metrics) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		service:  service,
		board:    &statements.ResultBoard{},
		logger:   logger,
		metrics:  metrics,
		validate: validator.New(),
	}
}

type statementRequest struct {
	Owner int64     `validate:"required,gt=0"`
	From  time.Time `validate:"required"`
	To    time.Time

	CompareFrom *time.Time
	CompareTo   *time.Time

	Format string `validate:"omitempty,oneof=json csv xlsx pdf"`
}

func (req statementRequest) primary() statements.PeriodSelection {
	return statements.PeriodSelection{From: req.From, To: req.To}
}

func (req statementRequest) comparison() *statements.PeriodSelection {
	if req.CompareFrom == nil {
		return nil
	}
	sel := statements.PeriodSelection{From: *req.CompareFrom}
	if req.CompareTo != nil {
		sel.To = *req.CompareTo
	}
	return &sel
}

func (h *Handler) parseRequest(r *http.Request) (statementRequest, error) {
	q := r.URL.Query()
	var req statementRequest

	if raw := q.Get("owner"); raw != "" {
		owner, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return req, errBadParam("owner debe ser un entero positivo")
		}
		req.Owner = owner
	}
	var err error
	if req.From, err = parseDate(q.Get("from")); err != nil {
		return req, errBadParam("from debe tener formato AAAA-MM-DD")
	}
	if req.To, err = parseDate(q.Get("to")); err != nil {
		return req, errBadParam("to debe tener formato AAAA-MM-DD")
	}
	if raw := q.Get("compare_from"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return req, errBadParam("compare_from debe tener formato AAAA-MM-DD")
		}
		req.CompareFrom = &t
	}
	if raw := q.Get("compare_to"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return req, errBadParam("compare_to debe tener formato AAAA-MM-DD")
		}
		req.CompareTo = &t
	}
	req.Format = q.Get("format")

	if err := h.validate.Struct(req); err != nil {
		return req, err
	}
	return req, nil
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(dateLayout, raw, time.UTC)
}

type badParamError string

func (e badParamError) Error() string { return string(e) }

func errBadParam(msg string) error { return badParamError(msg) }

// generate runs the pipeline under the latest-wins guard. A result arriving
// for a superseded token is still returned to its own caller but never
// published as the latest view.
func (h *Handler) generate(r *http.Request, req statementRequest) statements.Result {
	token := h.board.Begin()
	res := h.service.Generate(r.Context(), req.Owner, req.primary(), req.comparison())
	if !h.board.Accept(token, res) {
		if h.metrics != nil {
			h.metrics.StaleDiscard()
		}
	}
	return res
}

func (h *Handler) handleBalanceSheet(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseRequest(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	res := h.generate(r, req)
	switch req.Format {
	case "csv":
		h.exportCSV(w, "balance_general.csv", func() error {
			return export.WriteBalanceSheetCSV(w, res)
		})
	case "xlsx":
		h.exportXLSX(w, "estados_financieros.xlsx", res)
	case "pdf":
		h.exportPDF(w, "balance_general.pdf", export.KindBalanceSheet, res)
	default:
		httpx.JSON(w, http.StatusOK, BuildBalanceSheet(res))
	}
}

func (h *Handler) handleIncomeStatement(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseRequest(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	res := h.generate(r, req)
	switch req.Format {
	case "csv":
		h.exportCSV(w, "estado_resultados.csv", func() error {
			return export.WriteIncomeStatementCSV(w, res)
		})
	case "xlsx":
		h.exportXLSX(w, "estados_financieros.xlsx", res)
	case "pdf":
		h.exportPDF(w, "estado_resultados.pdf", export.KindIncomeStatement, res)
	default:
		httpx.JSON(w, http.StatusOK, BuildIncomeStatement(res))
	}
}

func (h *Handler) handleCostOfSales(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseRequest(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	res := h.generate(r, req)
	switch req.Format {
	case "csv":
		h.exportCSV(w, "costo_ventas.csv", func() error {
			return export.WriteCostOfSalesCSV(w, res)
		})
	case "xlsx":
		h.exportXLSX(w, "estados_financieros.xlsx", res)
	case "pdf":
		h.exportPDF(w, "costo_ventas.pdf", export.KindCostOfSales, res)
	default:
		httpx.JSON(w, http.StatusOK, BuildCostOfSales(res))
	}
}

func (h *Handler) handleCashFlow(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseRequest(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	res := h.generate(r, req)
	switch req.Format {
	case "csv":
		h.exportCSV(w, "flujo_efectivo.csv", func() error {
			return export.WriteCashFlowCSV(w, res)
		})
	case "xlsx":
		h.exportXLSX(w, "estados_financieros.xlsx", res)
	case "pdf":
		h.exportPDF(w, "flujo_efectivo.pdf", export.KindCashFlow, res)
	default:
		httpx.JSON(w, http.StatusOK, BuildCashFlow(res))
	}
}

// handleLatest exposes the newest accepted result for the dashboard view.
func (h *Handler) handleLatest(w http.ResponseWriter, r *http.Request) {
	res, ok := h.board.Latest()
	if !ok {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "no statement computed yet")
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

func (h *Handler) exportCSV(w http.ResponseWriter, filename string, write func() error) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	if err := write(); err != nil {
		h.logger.Error("csv export", slog.Any("error", err))
	}
}

func (h *Handler) exportXLSX(w http.ResponseWriter, filename string, res statements.Result) {
	file, err := export.Workbook(res)
	if err != nil {
		h.logger.Error("xlsx export", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Export Failed", "")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	if err := file.Write(w); err != nil {
		h.logger.Error("xlsx write", slog.Any("error", err))
	}
}

func (h *Handler) exportPDF(w http.ResponseWriter, filename string, kind export.Kind, res statements.Result) {
	payload, err := export.RenderPDF(kind, res)
	if err != nil {
		h.logger.Error("pdf export", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Export Failed", "")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	_, _ = w.Write(payload)
}
