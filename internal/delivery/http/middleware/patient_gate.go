package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"health-wheel/internal/domain/entity"
	"health-wheel/pkg/response"
)

const PatientIDParam = "patient_id"

// ResolvePatient computes the patient a request acts on. Admins may target
// any patient through the patient_id query parameter; other callers may
// only name themselves. Must run after Authenticate.
func ResolvePatient(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionPatientID, ok := GetPatientIDFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "Patient information not found")
			return
		}
		role, _ := GetRoleFromContext(r.Context())

		effective := sessionPatientID
		if raw := strings.TrimSpace(r.URL.Query().Get(PatientIDParam)); raw != "" {
			requested, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || requested <= 0 {
				response.BadRequest(w, "Invalid patient_id")
				return
			}
			if requested != sessionPatientID && !entity.IsAdminRole(role) {
				response.Forbidden(w, "You can only access your own data")
				return
			}
			effective = requested
		}

		ctx := context.WithValue(r.Context(), EffectivePatientIDKey, effective)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetEffectivePatientID returns the patient resolved by ResolvePatient,
// falling back to the session patient.
func GetEffectivePatientID(ctx context.Context) (int64, bool) {
	if id, ok := ctx.Value(EffectivePatientIDKey).(int64); ok {
		return id, true
	}
	return GetPatientIDFromContext(ctx)
}
