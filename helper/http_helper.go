package helper

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"blog-platform/logging"
	"blog-platform/models"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

const (
	textError = `error`
	textOk    = `ok`

	internalErrorMessage = `Internal server error`
)

// ResponseHelper ...
type ResponseHelper struct {
	C        *gin.Context
	Status   string
	Message  string
	Data     interface{}
	Code     int
	CodeType string
}

// HTTPHelper ...
type HTTPHelper struct {
	Translator ut.Translator
	Logger     *logging.Logger
}

func NewHTTPHelper(translator ut.Translator, logger *logging.Logger) *HTTPHelper {
	return &HTTPHelper{Translator: translator, Logger: logger}
}

// GetStatusCode ...
// Map an error kind to its HTTP status.
func (u *HTTPHelper) GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var (
		unauthorized *models.ErrorUnauthorized
		notFound     *models.ErrorNotFound
		forbidden    *models.ErrorForbidden
		invalid      *models.ErrorValidation
		conflict     *models.ErrorConflict
		validation   validator.ValidationErrors
	)

	switch {
	case errors.As(err, &unauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &invalid), errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &conflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// SetResponse ...
// Set response data.
func (u *HTTPHelper) SetResponse(c *gin.Context, status string, message string, data interface{}, code int, codeType string) ResponseHelper {
	return ResponseHelper{c, status, message, data, code, codeType}
}

// SendErrorResponse ...
// Send the response matching the kind of err.
func (u *HTTPHelper) SendErrorResponse(c *gin.Context, err error) error {
	var (
		unauthorized *models.ErrorUnauthorized
		forbidden    *models.ErrorForbidden
		invalid      *models.ErrorValidation
		conflict     *models.ErrorConflict
		validation   validator.ValidationErrors
	)

	switch u.GetStatusCode(err) {
	case http.StatusUnauthorized:
		errors.As(err, &unauthorized)
		return u.SendUnauthorizedError(c, err.Error(), reasonData(string(unauthorized.Reason)))
	case http.StatusNotFound:
		return u.SendNotFoundError(c, err.Error(), u.EmptyJsonMap())
	case http.StatusForbidden:
		errors.As(err, &forbidden)
		return u.SendForbiddenError(c, err.Error(), reasonData(forbidden.Reason))
	case http.StatusBadRequest:
		if errors.As(err, &validation) {
			return u.SendValidationError(c, validation)
		}
		errors.As(err, &invalid)
		return u.SendFieldError(c, invalid.Field, invalid.Message)
	case http.StatusConflict:
		errors.As(err, &conflict)
		return u.SendConflictError(c, err.Error(), map[string]interface{}{"field": conflict.Field})
	default:
		return u.SendInternalError(c, err)
	}
}

// SendError ...
// Send error response to consumers.
func (u *HTTPHelper) SendError(c *gin.Context, message string, data interface{}, code int, codeType string) error {
	res := u.SetResponse(c, textError, message, data, code, codeType)

	return u.SendResponse(res)
}

// SendBadRequest ...
// Send bad request response to consumers.
func (u *HTTPHelper) SendBadRequest(c *gin.Context, message string, data interface{}) error {
	return u.SendError(c, message, data, http.StatusBadRequest, `badRequest`)
}

// SendValidationError ...
// Send validation error response to consumers.
func (u *HTTPHelper) SendValidationError(c *gin.Context, validationErrors validator.ValidationErrors) error {
	errorResponse := map[string][]string{}
	errorTranslation := validationErrors.Translate(u.Translator)
	for _, err := range validationErrors {
		errKey := err.Field()
		errorResponse[errKey] = append(errorResponse[errKey], errorTranslation[err.Namespace()])
	}

	return u.sendValidation(c, errorResponse)
}

// SendFieldError ...
// Send a validation error for a single field.
func (u *HTTPHelper) SendFieldError(c *gin.Context, field, message string) error {
	return u.sendValidation(c, map[string][]string{field: {message}})
}

func (u *HTTPHelper) sendValidation(c *gin.Context, errorResponse map[string][]string) error {
	c.JSON(http.StatusBadRequest, map[string]interface{}{
		"code":         http.StatusBadRequest,
		"code_type":    "validationError",
		"code_message": errorResponse,
		"data":         u.EmptyJsonMap(),
	})
	return nil
}

// SendUnauthorizedError ...
// Send unauthorized response to consumers.
func (u *HTTPHelper) SendUnauthorizedError(c *gin.Context, message string, data interface{}) error {
	return u.SendError(c, message, data, http.StatusUnauthorized, `unAuthorized`)
}

// SendForbiddenError ...
// Send forbidden response to consumers.
func (u *HTTPHelper) SendForbiddenError(c *gin.Context, message string, data interface{}) error {
	return u.SendError(c, message, data, http.StatusForbidden, `forbidden`)
}

// SendNotFoundError ...
// Send not found response to consumers.
func (u *HTTPHelper) SendNotFoundError(c *gin.Context, message string, data interface{}) error {
	return u.SendError(c, message, data, http.StatusNotFound, `notFound`)
}

// SendConflictError ...
// Send conflict response to consumers.
func (u *HTTPHelper) SendConflictError(c *gin.Context, message string, data interface{}) error {
	return u.SendError(c, message, data, http.StatusConflict, `conflict`)
}

// SendTooManyRequests ...
// Send rate limit response to consumers.
func (u *HTTPHelper) SendTooManyRequests(c *gin.Context, message string) error {
	return u.SendError(c, message, u.EmptyJsonMap(), http.StatusTooManyRequests, `tooManyRequests`)
}

// SendInternalError ...
// Log err and send a generic message; storage details never reach the client.
func (u *HTTPHelper) SendInternalError(c *gin.Context, err error) error {
	if u.Logger != nil {
		u.Logger.WithContext(c.Request.Context()).WithError(err).Error("request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
	}
	return u.SendError(c, internalErrorMessage, u.EmptyJsonMap(), http.StatusInternalServerError, `internalServerError`)
}

// SendSuccess ...
// Send success response to consumers.
func (u *HTTPHelper) SendSuccess(c *gin.Context, message string, data interface{}) error {
	res := u.SetResponse(c, textOk, message, data, http.StatusOK, `success`)

	return u.SendResponse(res)
}

// SendCreated ...
// Send created response to consumers.
func (u *HTTPHelper) SendCreated(c *gin.Context, message string, data interface{}) error {
	res := u.SetResponse(c, textOk, message, data, http.StatusCreated, `created`)

	return u.SendResponse(res)
}

// SendResponse ...
// Send response; the envelope code is the HTTP status.
func (u *HTTPHelper) SendResponse(res ResponseHelper) error {
	if len(res.Message) == 0 {
		res.Message = `success`
	}

	res.C.JSON(res.Code, map[string]interface{}{
		"code":         res.Code,
		"code_type":    res.CodeType,
		"code_message": res.Message,
		"data":         res.Data,
	})
	return nil
}

func (u *HTTPHelper) EmptyJsonMap() map[string]interface{} {
	return make(map[string]interface{})
}

func reasonData(reason string) map[string]interface{} {
	if reason == "" {
		return map[string]interface{}{}
	}
	return map[string]interface{}{"reason": reason}
}

// get pagination URL
func (u *HTTPHelper) GetPagingUrl(c *gin.Context, page, limit int) string {
	r := c.Request
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}

	q := r.URL.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return scheme + "://" + r.Host + r.URL.Path + "?" + q.Encode()
}

// Set paginantion response
func (u *HTTPHelper) GeneratePaging(c *gin.Context, limit, page, totalRecord int) map[string]interface{} {
	prevURL, nextURL, firstURL, lastURL := "", "", "", ""

	totalPages := int(math.Ceil(float64(totalRecord) / float64(limit)))

	if totalPages >= page && page > 1 {
		prevURL = u.GetPagingUrl(c, page-1, limit)
		firstURL = u.GetPagingUrl(c, 1, limit)
	}

	if totalPages > page {
		nextURL = u.GetPagingUrl(c, page+1, limit)
	}

	if totalPages >= page && totalPages != page {
		lastURL = u.GetPagingUrl(c, totalPages, limit)
	}

	links := map[string]interface{}{
		"previous": prevURL,
		"next":     nextURL,
		"first":    firstURL,
		"last":     lastURL,
	}

	pagination := map[string]interface{}{
		"total_records": totalRecord,
		"per_page":      limit,
		"current_page":  page,
		"total_pages":   totalPages,
		"links":         links,
	}

	return pagination
}
