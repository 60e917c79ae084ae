package database

import "context"

type contextKey string

const actorKey contextKey = "audit_actor"

// WithActor menyimpan nama user yang sedang login ke context request,
// dipakai hook gorm untuk mengisi kolom created_by/updated_by.
func WithActor(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, actorKey, name)
}

// Actor mengambil nama actor dari context; kosong jika request tanpa auth.
func Actor(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if name, ok := ctx.Value(actorKey).(string); ok {
		return name
	}
	return ""
}
