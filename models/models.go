package models

// All returns every model in migration order (parents before children)
func All() []interface{} {
	return []interface{}{
		&Country{},
		&Region{},
		&Province{},
		&District{},
		&Therapist{},
		&AuditLog{},
	}
}
