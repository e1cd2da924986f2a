package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
)

// OwnerIDHeader заголовок с ID владельца календаря (проставляется шлюзом после аутентификации)
const OwnerIDHeader = "X-Owner-ID"

type ctxKey int

const (
	ctxKeyOwnerID ctxKey = iota
	ctxKeyRequestID
)

// Auth пропускает только запросы с корректным X-Owner-ID
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(OwnerIDHeader)
		if raw == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок "+OwnerIDHeader)
			return
		}

		ownerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || ownerID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок "+OwnerIDHeader)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyOwnerID, ownerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetOwnerID достает ID владельца, положенный Auth
func GetOwnerID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ctxKeyOwnerID).(int64)
	return id, ok
}
