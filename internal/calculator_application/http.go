package calculator_application

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/ERRORIK404/Scientific_Calculator/internal/plot"
	"github.com/ERRORIK404/Scientific_Calculator/internal/session"
	"github.com/ERRORIK404/Scientific_Calculator/internal/statistics"
	"github.com/ERRORIK404/Scientific_Calculator/internal/symbolic"
	hashing "github.com/ERRORIK404/Scientific_Calculator/pkg/hashing"
	locerr "github.com/ERRORIK404/Scientific_Calculator/pkg/local_errors"
	structs "github.com/ERRORIK404/Scientific_Calculator/pkg/structs"
	"github.com/ERRORIK404/Scientific_Calculator/pkg/tokenezation"
)

const (
	chartWidth  = 72
	chartHeight = 20
)

func (a *Application) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/register", a.registerHandler)
	mux.HandleFunc("POST /api/v1/login", a.loginHandler)

	mux.HandleFunc("GET /api/v1/calculator", a.authorized(a.stateHandler))
	mux.HandleFunc("POST /api/v1/calculator/append", a.authorized(a.appendHandler))
	mux.HandleFunc("POST /api/v1/calculator/clear", a.authorized(a.clearHandler))
	mux.HandleFunc("POST /api/v1/calculator/toggle-sign", a.authorized(a.toggleSignHandler))
	mux.HandleFunc("POST /api/v1/calculator/evaluate", a.authorized(a.evaluateHandler))
	mux.HandleFunc("PUT /api/v1/calculator/precision", a.authorized(a.precisionHandler))

	mux.HandleFunc("GET /api/v1/history", a.authorized(a.historyHandler))
	mux.HandleFunc("DELETE /api/v1/history", a.authorized(a.clearHistoryHandler))
	mux.HandleFunc("POST /api/v1/history/export", a.authorized(a.exportHandler))
	mux.HandleFunc("GET /api/v1/exports", a.authorized(a.exportsHandler))
	mux.HandleFunc("GET /api/v1/exports/{id}", a.authorized(a.exportByIDHandler))

	mux.HandleFunc("POST /api/v1/plot", a.plotHandler)
	mux.HandleFunc("POST /api/v1/statistics", a.statisticsHandler)
	mux.HandleFunc("POST /api/v1/symbolic", a.symbolicHandler)

	return a.logged(mux)
}

func (a *Application) logged(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.log.Debug("http.request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

type authHandler func(w http.ResponseWriter, r *http.Request, login string)

// authorized пропускает только запросы с действующим Bearer токеном
func (a *Application) authorized(next authHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token", "")
			return
		}
		login, err := tokenezation.CheckToken(token, a.config.JWT_SECRET)
		if err != nil {
			writeError(w, http.StatusUnauthorized, err.Error(), "")
			return
		}
		next(w, r, login)
	}
}

type credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (a *Application) registerHandler(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if !decode(w, r, &c) {
		return
	}
	if strings.TrimSpace(c.Login) == "" || c.Password == "" {
		writeError(w, http.StatusBadRequest, "login and password are required", "")
		return
	}

	hashpassword, err := hashing.HashPassword(c.Password)
	if err != nil {
		a.internalError(w, "user.register.failed", err)
		return
	}
	if err := a.db.CreateUser(c.Login, hashpassword); err != nil {
		if errors.Is(err, locerr.ErrUserExists) {
			writeError(w, http.StatusConflict, err.Error(), "")
			return
		}
		a.internalError(w, "user.register.failed", err)
		return
	}
	a.log.Info("user.registered", "login", c.Login)
	writeJSON(w, http.StatusCreated, map[string]string{"login": c.Login})
}

func (a *Application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if !decode(w, r, &c) {
		return
	}

	user, err := a.db.GetUser(c.Login)
	if errors.Is(err, locerr.ErrUserNotFound) {
		writeError(w, http.StatusUnauthorized, hashing.ErrWrongPassword.Error(), "")
		return
	}
	if err != nil {
		a.internalError(w, "user.login.failed", err)
		return
	}
	if err := hashing.CheckPassword(user.PasswordHash, c.Password); err != nil {
		writeError(w, http.StatusUnauthorized, hashing.ErrWrongPassword.Error(), "")
		return
	}

	token, err := tokenezation.GenerateToken(user.Login, a.config.JWT_SECRET, a.config.TOKEN_TTL)
	if err != nil {
		a.internalError(w, "user.login.failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

type stateResponse struct {
	Buffer    string                 `json:"buffer"`
	Precision int                    `json:"precision"`
	Result    string                 `json:"result,omitempty"`
	History   []structs.HistoryEntry `json:"history"`
}

func snapshot(s *session.Session) stateResponse {
	return stateResponse{Buffer: s.Buffer(), Precision: s.Precision(), History: s.RecentHistory()}
}

// sessionHandler выполняет действие над сессией и отвечает её состоянием
func (a *Application) sessionHandler(w http.ResponseWriter, login string, action func(*session.Session) error) {
	var state stateResponse
	err := a.withSession(login, func(s *session.Session) error {
		if err := action(s); err != nil {
			return err
		}
		state = snapshot(s)
		return nil
	})
	if err != nil {
		a.failure(w, login, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (a *Application) stateHandler(w http.ResponseWriter, r *http.Request, login string) {
	a.sessionHandler(w, login, func(*session.Session) error { return nil })
}

func (a *Application) appendHandler(w http.ResponseWriter, r *http.Request, login string) {
	var body struct {
		Token string `json:"token"`
	}
	if !decode(w, r, &body) {
		return
	}
	a.sessionHandler(w, login, func(s *session.Session) error {
		s.Append(body.Token)
		return nil
	})
}

func (a *Application) clearHandler(w http.ResponseWriter, r *http.Request, login string) {
	a.sessionHandler(w, login, func(s *session.Session) error {
		s.Clear()
		return nil
	})
}

func (a *Application) toggleSignHandler(w http.ResponseWriter, r *http.Request, login string) {
	a.sessionHandler(w, login, func(s *session.Session) error {
		s.ToggleSign()
		return nil
	})
}

func (a *Application) evaluateHandler(w http.ResponseWriter, r *http.Request, login string) {
	var state stateResponse
	err := a.withSession(login, func(s *session.Session) error {
		result, err := s.Evaluate()
		if err != nil {
			return err
		}
		state = snapshot(s)
		state.Result = result
		return nil
	})
	if err != nil {
		a.failure(w, login, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (a *Application) precisionHandler(w http.ResponseWriter, r *http.Request, login string) {
	var body struct {
		Precision int `json:"precision"`
	}
	if !decode(w, r, &body) {
		return
	}
	a.sessionHandler(w, login, func(s *session.Session) error {
		return s.SetPrecision(body.Precision)
	})
}

func (a *Application) historyHandler(w http.ResponseWriter, r *http.Request, login string) {
	var entries []structs.HistoryEntry
	err := a.withSession(login, func(s *session.Session) error {
		entries = s.History()
		return nil
	})
	if err != nil {
		a.failure(w, login, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": entries})
}

func (a *Application) clearHistoryHandler(w http.ResponseWriter, r *http.Request, login string) {
	err := a.withSession(login, func(s *session.Session) error {
		s.ClearHistory()
		return nil
	})
	if err != nil {
		a.failure(w, login, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *Application) exportHandler(w http.ResponseWriter, r *http.Request, login string) {
	export, err := a.export(login)
	if err != nil {
		a.failure(w, login, err)
		return
	}
	writeJSON(w, http.StatusCreated, export)
}

func (a *Application) exportsHandler(w http.ResponseWriter, r *http.Request, login string) {
	exports, err := a.db.GetUserExports(login)
	if err != nil {
		a.internalError(w, "exports.list.failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"exports": exports})
}

// exportByIDHandler отдаёт сохранённую выгрузку файлом
func (a *Application) exportByIDHandler(w http.ResponseWriter, r *http.Request, login string) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id", "")
		return
	}
	export, err := a.db.GetExportByID(id, login)
	if err != nil {
		a.failure(w, login, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.FileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(export.Content))
}

type plotRequest struct {
	Expression string `json:"expression"`
	plot.Options
}

type plotResponse struct {
	Expression string     `json:"expression"`
	X          []float64  `json:"x"`
	Y          []*float64 `json:"y"`
	Chart      string     `json:"chart"`
}

func (a *Application) plotHandler(w http.ResponseWriter, r *http.Request) {
	req := plotRequest{Options: plot.DefaultOptions()}
	if !decode(w, r, &req) {
		return
	}
	series, err := plot.Sample(req.Expression, req.Options)
	if err != nil {
		a.failure(w, "", err)
		return
	}

	// NaN не кодируется в JSON, разрывы отдаются как null
	ys := make([]*float64, len(series.Y))
	for i := range series.Y {
		if !math.IsNaN(series.Y[i]) {
			ys[i] = &series.Y[i]
		}
	}
	writeJSON(w, http.StatusOK, plotResponse{
		Expression: series.Expression,
		X:          series.X,
		Y:          ys,
		Chart:      plot.Render(series, chartWidth, chartHeight),
	})
}

type statisticsResponse struct {
	Summary   *statistics.Summary   `json:"summary"`
	Rows      []statistics.Row      `json:"rows"`
	Histogram *statistics.Histogram `json:"histogram"`
	BoxPlot   *statistics.BoxPlot   `json:"box_plot"`
	Chart     string                `json:"chart"`
}

func (a *Application) statisticsHandler(w http.ResponseWriter, r *http.Request) {
	req := struct {
		Data      string `json:"data"`
		Precision int    `json:"precision"`
	}{Precision: session.DefaultPrecision}
	if !decode(w, r, &req) {
		return
	}
	if req.Precision < session.MinPrecision || req.Precision > session.MaxPrecision {
		writeError(w, http.StatusBadRequest, locerr.ErrPrecisionOutOfRange.Error(), "")
		return
	}

	data, err := statistics.ParseData(req.Data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}
	summary, err := statistics.Describe(data)
	if err != nil {
		a.failure(w, "", err)
		return
	}
	hist, err := statistics.NewHistogram(data)
	if err != nil {
		a.failure(w, "", err)
		return
	}
	box, err := statistics.NewBoxPlot(data)
	if err != nil {
		a.failure(w, "", err)
		return
	}
	writeJSON(w, http.StatusOK, statisticsResponse{
		Summary:   summary,
		Rows:      summary.Rows(req.Precision),
		Histogram: hist,
		BoxPlot:   box,
		Chart:     hist.Render(chartWidth/2) + "\n" + box.Render(chartWidth),
	})
}

func (a *Application) symbolicHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Expression string `json:"expression"`
		Operation  string `json:"operation"`
		Point      string `json:"point"`
	}
	if !decode(w, r, &req) {
		return
	}
	op, err := symbolic.ParseOperation(req.Operation)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}
	result, err := symbolic.Compute(req.Expression, op, req.Point)
	if err != nil {
		a.failure(w, "", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
