package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/velvetcrown/wigmatch-backend/api/middleware"
	"github.com/velvetcrown/wigmatch-backend/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "public", "status": "ok"})
	}
}

func TenantPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"scope": "tenant", "status": "ok"}
		if tenant := middleware.TenantIDFromContext(r.Context()); tenant != uuid.Nil {
			payload["tenant_id"] = tenant.String()
		}
		responses.WriteSuccess(w, payload)
	}
}
