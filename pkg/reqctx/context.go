package reqctx

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ctxKey int

const (
	keyRequestMeta ctxKey = iota
	keyClinicID
)

// RequestMeta holds per-request metadata set by HTTP middleware.
type RequestMeta struct {
	RequestID   string
	ClientIP    string
	UserAgent   string
	RequestedAt time.Time
}

// WithRequestMeta stores RequestMeta in the context.
func WithRequestMeta(ctx context.Context, meta *RequestMeta) context.Context {
	return context.WithValue(ctx, keyRequestMeta, meta)
}

// RequestMetaFromContext retrieves RequestMeta from the context.
func RequestMetaFromContext(ctx context.Context) (*RequestMeta, bool) {
	meta, ok := ctx.Value(keyRequestMeta).(*RequestMeta)
	return meta, ok && meta != nil
}

// RequestIDFromContext returns the request ID, or "" if no RequestMeta is set.
func RequestIDFromContext(ctx context.Context) string {
	meta, ok := RequestMetaFromContext(ctx)
	if !ok {
		return ""
	}
	return meta.RequestID
}

// WithClinicID stores the validated clinic of the request.
func WithClinicID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, keyClinicID, id)
}

// ClinicIDFromContext returns the clinic stored by WithClinicID.
func ClinicIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(keyClinicID).(uuid.UUID)
	return id, ok && id != uuid.Nil
}
