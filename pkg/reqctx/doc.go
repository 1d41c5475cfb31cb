// Package reqctx carries request-scoped metadata through context.Context.
//
// HTTP middleware stores a RequestMeta for every request and the clinic ID
// once the X-Clinic-ID header has been validated. Services and loggers read
// them back with the typed getters:
//
//	ctx = reqctx.WithRequestMeta(ctx, &reqctx.RequestMeta{RequestID: id})
//	ctx = reqctx.WithClinicID(ctx, clinicID)
//
//	clinicID, ok := reqctx.ClinicIDFromContext(ctx)
//
// Context keys are unexported so only this package can set them.
package reqctx
