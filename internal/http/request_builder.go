package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/scoop-service/internal/domain/dto"
	"github.com/guttosm/scoop-service/internal/domain/model"
	"github.com/guttosm/scoop-service/internal/i18n"
	"github.com/guttosm/scoop-service/internal/middleware"
)

// envelopePool recycles response envelopes. Gin serializes synchronously,
// so an envelope can go back to the pool as soon as the write returns.
type envelopePool[T any] struct {
	pool  sync.Pool
	reset func(*T)
}

func newEnvelopePool[T any](reset func(*T)) *envelopePool[T] {
	return &envelopePool[T]{
		pool:  sync.Pool{New: func() any { return new(T) }},
		reset: reset,
	}
}

func (p *envelopePool[T]) get() *T {
	if v, ok := p.pool.Get().(*T); ok {
		return v
	}
	return new(T)
}

func (p *envelopePool[T]) put(v *T) {
	p.reset(v)
	p.pool.Put(v)
}

var (
	successEnvelopes = newEnvelopePool(func(r *dto.SuccessResponse) { *r = dto.SuccessResponse{} })
	errorEnvelopes   = newEnvelopePool(func(r *dto.ErrorResponse) { *r = dto.ErrorResponse{} })
)

// BuildRequest binds the JSON body of c into a new T, applying its binding tags.
func BuildRequest[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// ResponseBuilder writes the service's JSON envelopes for one request.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a new response builder for the given context.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success wraps data in a success envelope stamped with the request id.
func (b *ResponseBuilder) Success(statusCode int, data any) {
	resp := successEnvelopes.get()
	defer successEnvelopes.put(resp)

	resp.Data = data
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()
	b.c.JSON(statusCode, resp)
}

func (b *ResponseBuilder) SuccessOK(data any)       { b.Success(http.StatusOK, data) }
func (b *ResponseBuilder) SuccessCreated(data any)  { b.Success(http.StatusCreated, data) }
func (b *ResponseBuilder) SuccessAccepted(data any) { b.Success(http.StatusAccepted, data) }

// Error aborts with a translated error envelope. err, when set, is attached
// to the gin context so the error middleware logs it.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	if err != nil {
		_ = b.c.Error(err)
	}
	b.abort(statusCode, dto.ErrCodeFromStatus(statusCode), messageKey, nil)
}

// ValidationError sends a 422 response with one translated message per invalid field.
func (b *ResponseBuilder) ValidationError(verr *model.ValidationError) {
	locale := i18n.GetLocale(b.c)
	translator := i18n.GetTranslator()

	details := make(map[string]string, len(verr.Fields))
	for _, f := range verr.Fields {
		details[f.Field] = translator.Translate(f.Key, locale)
	}
	b.abort(http.StatusUnprocessableEntity, dto.ErrCodeValidation, i18n.ErrKeyValidationFailed, details)
}

func (b *ResponseBuilder) abort(statusCode int, code, messageKey string, details map[string]string) {
	resp := errorEnvelopes.get()
	defer errorEnvelopes.put(resp)

	resp.Error = code
	resp.Message = i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(b.c))
	resp.Details = details
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()
	b.c.AbortWithStatusJSON(statusCode, resp)
}
