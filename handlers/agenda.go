package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"court_agenda_go/config"
	"court_agenda_go/db"
	"court_agenda_go/middleware"
	"court_agenda_go/models"
	"court_agenda_go/services"

	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

// agendaError maps service errors to HTTP responses
func agendaError(err error) error {
	var validationErr *services.ValidationError
	var transitionErr *services.InvalidTransitionError
	var successorsErr *services.HasSuccessorsError

	switch {
	case errors.Is(err, services.ErrHearingNotFound),
		errors.Is(err, services.ErrCaseNotFound),
		errors.Is(err, services.ErrDocketNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.As(err, &validationErr):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.As(err, &transitionErr):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.As(err, &successorsErr):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "operation failed")
	}
}

func parsePeriod(c echo.Context) (int, time.Month, error) {
	year := time.Now().UTC().Year()
	if raw := c.QueryParam("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid year")
		}
		year = parsed
	}

	var month time.Month
	if raw := c.QueryParam("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid month")
		}
		month = time.Month(parsed)
	}
	return year, month, nil
}

func periodFilters(c echo.Context) services.HearingFilters {
	return services.HearingFilters{
		Search:      c.QueryParam("q"),
		ChamberType: c.QueryParam("chamber"),
		Status:      c.QueryParam("status"),
	}
}

// ListHearingsHandler returns the hearings of a year or month with
// optional text, chamber and status filters
func ListHearingsHandler(c echo.Context) error {
	year, month, err := parsePeriod(c)
	if err != nil {
		return err
	}

	hearings, err := services.ListHearingsByPeriod(db.DB, year, month, periodFilters(c))
	if err != nil {
		return agendaError(err)
	}
	return c.JSON(http.StatusOK, hearings)
}

// HearingStatsHandler returns per-status totals for a period
func HearingStatsHandler(c echo.Context) error {
	year, month, err := parsePeriod(c)
	if err != nil {
		return err
	}

	hearings, err := services.ListHearingsByPeriod(db.DB, year, month, periodFilters(c))
	if err != nil {
		return agendaError(err)
	}
	return c.JSON(http.StatusOK, services.AggregateStatusCounts(hearings))
}

// ListHearingsByDayHandler returns the hearings of a single date
func ListHearingsByDayHandler(c echo.Context) error {
	date, err := time.Parse(dateLayout, c.Param("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
	}

	hearings, err := services.ListHearingsByDay(db.DB, date)
	if err != nil {
		return agendaError(err)
	}
	return c.JSON(http.StatusOK, hearings)
}

// GetHearingHandler returns a single hearing
func GetHearingHandler(c echo.Context) error {
	hearing, err := services.GetHearingByID(db.DB, c.Param("id"))
	if err != nil {
		return agendaError(err)
	}
	return c.JSON(http.StatusOK, hearing)
}

type createHearingRequest struct {
	CaseID            *string `json:"case_id,omitempty"`
	DocketNumber      string  `json:"docket_number"`
	Party             string  `json:"party"`
	Title             string  `json:"title"`
	ChamberType       string  `json:"chamber_type"`
	ChamberOtherLabel string  `json:"chamber_other_label,omitempty"`
	HearingDate       string  `json:"hearing_date"`
	HearingTime       string  `json:"hearing_time"`
	Location          string  `json:"location"`
	Notes             string  `json:"notes,omitempty"`
}

// CreateHearingHandler creates a new scheduled hearing
func CreateHearingHandler(c echo.Context) error {
	var req createHearingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	var hearingDate time.Time
	if req.HearingDate != "" {
		parsed, err := time.Parse(dateLayout, req.HearingDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid hearing_date format, expected YYYY-MM-DD")
		}
		hearingDate = parsed
	}

	hearing, err := services.CreateHearing(db.DB, services.HearingInput{
		CaseID:            req.CaseID,
		DocketNumber:      req.DocketNumber,
		Party:             req.Party,
		Title:             req.Title,
		ChamberType:       req.ChamberType,
		ChamberOtherLabel: req.ChamberOtherLabel,
		HearingDate:       hearingDate,
		HearingTime:       req.HearingTime,
		Location:          req.Location,
		Notes:             req.Notes,
	}, middleware.GetActor(c))
	if err != nil {
		return agendaError(err)
	}
	return c.JSON(http.StatusCreated, hearing)
}

// UpdateHearingHandler applies a partial update of descriptive fields.
// Status is not an editable field here; the transition endpoints are
// the only way to change it.
func UpdateHearingHandler(c echo.Context) error {
	fields := make(map[string]interface{})
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if raw, ok := fields["hearing_date"]; ok {
		value, ok := raw.(string)
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid hearing_date")
		}
		parsed, err := time.Parse(dateLayout, value)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid hearing_date format, expected YYYY-MM-DD")
		}
		fields["hearing_date"] = parsed
	}

	hearing, err := services.UpdateHearing(db.DB, c.Param("id"), fields, middleware.GetActor(c))
	if err != nil {
		return agendaError(err)
	}
	return c.JSON(http.StatusOK, hearing)
}

// DeleteHearingHandler removes a hearing. Pass force=true to cascade
// over its successor reports.
func DeleteHearingHandler(c echo.Context) error {
	force := c.QueryParam("force") == "true"
	err := services.DeleteHearing(db.DB, c.Param("id"), force, middleware.GetActor(c))
	if err != nil {
		return agendaError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Hearing deleted"})
}

type rescheduleRequest struct {
	HearingDate string `json:"hearing_date"`
	HearingTime string `json:"hearing_time"`
	Motive      string `json:"motive"`
	Notes       string `json:"notes,omitempty"`
}

// RescheduleHearingHandler supersedes a hearing with a successor on a
// new date and notifies the case's client when one is on file
func RescheduleHearingHandler(c echo.Context) error {
	var req rescheduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	var newDate time.Time
	if req.HearingDate != "" {
		parsed, err := time.Parse(dateLayout, req.HearingDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid hearing_date format, expected YYYY-MM-DD")
		}
		newDate = parsed
	}

	source, err := services.GetHearingByID(db.DB, c.Param("id"))
	if err != nil {
		return agendaError(err)
	}

	successor, err := services.RescheduleHearing(db.DB, source.ID, newDate, req.HearingTime, req.Motive, req.Notes, middleware.GetActor(c))
	if err != nil {
		return agendaError(err)
	}

	notifyCaseClient(c, source, func(email string) *services.Email {
		return services.BuildRescheduleEmail(email, source, successor, req.Motive)
	})

	return c.JSON(http.StatusCreated, successor)
}

// CompleteHearingHandler marks a scheduled hearing as held
func CompleteHearingHandler(c echo.Context) error {
	hearing, err := services.CompleteHearing(db.DB, c.Param("id"), middleware.GetActor(c))
	if err != nil {
		return agendaError(err)
	}
	return c.JSON(http.StatusOK, hearing)
}

// CancelHearingHandler cancels a scheduled hearing
func CancelHearingHandler(c echo.Context) error {
	hearing, err := services.CancelHearing(db.DB, c.Param("id"), middleware.GetActor(c))
	if err != nil {
		return agendaError(err)
	}

	notifyCaseClient(c, hearing, func(email string) *services.Email {
		return services.BuildCancellationEmail(email, hearing)
	})

	return c.JSON(http.StatusOK, hearing)
}

// DocketHistoryHandler returns the full report chain and history log of
// a docket reference. The reference goes in a query parameter because
// docket numbers routinely contain slashes (e.g. "2024/001").
func DocketHistoryHandler(c echo.Context) error {
	reference := c.QueryParam("reference")
	if reference == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing docket reference")
	}

	record, err := services.DocketHistory(db.DB, reference)
	if err != nil {
		return agendaError(err)
	}
	return c.JSON(http.StatusOK, record)
}

// ExportHearingsHandler streams the hearings of a period as an XLSX file
func ExportHearingsHandler(c echo.Context) error {
	year, month, err := parsePeriod(c)
	if err != nil {
		return err
	}

	buf, err := services.ExportHearingsToExcel(db.DB, year, month, periodFilters(c))
	if err != nil {
		return agendaError(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="hearings.xlsx"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

// notifyCaseClient sends a best-effort notification to the client email
// on the hearing's case, if any. The mutation has already committed;
// notification failures only get logged.
func notifyCaseClient(c echo.Context, hearing *models.Hearing, build func(email string) *services.Email) {
	cfg, ok := c.Get("config").(*config.Config)
	if !ok || hearing.CaseID == nil {
		return
	}

	var caseRecord models.Case
	if err := db.DB.First(&caseRecord, "id = ?", *hearing.CaseID).Error; err != nil {
		return
	}
	if caseRecord.ClientEmail == "" {
		return
	}

	services.SendEmailAsync(cfg, build(caseRecord.ClientEmail))
}
