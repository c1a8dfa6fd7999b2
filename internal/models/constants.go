package models

// Роли пользователей
const (
	RoleGuest      = "guest"
	RoleOperator   = "operator"
	RoleSuperAdmin = "super_admin"
)

// Статусы яхт
const (
	YachtStatusPending  = "pending"
	YachtStatusApproved = "approved"
	YachtStatusRejected = "rejected"
	YachtStatusDisabled = "disabled"
)

// Статусы бронирований
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusRejected  = "rejected"
)

// Локации
const (
	LocationMarina = "Dubai Marina"
	LocationJBR    = "JBR"
	LocationCreek  = "Creek"
)

const (
	// DailyRateHours порог в часах, начиная с которого применяется дневной тариф
	DailyRateHours = 8

	// MinPasswordLength минимальная длина пароля при регистрации
	MinPasswordLength = 6

	// DefaultSessionTTL время жизни сессии в Redis
	DefaultSessionTTL = 24 * 60 * 60 // 24 часа в секундах

	// WorkerQueueSize размер очереди воркера уведомлений
	WorkerQueueSize = 1000

	// LoginRateLimit количество попыток входа в окне
	LoginRateLimit = 10

	// LoginRateWindow окно ограничения попыток входа
	LoginRateWindow = 60 // 1 минута в секундах
)

// ValidRole reports whether r is one of the closed role set.
func ValidRole(r string) bool {
	switch r {
	case RoleGuest, RoleOperator, RoleSuperAdmin:
		return true
	}
	return false
}

// ValidYachtStatus reports whether s is a known yacht status.
func ValidYachtStatus(s string) bool {
	switch s {
	case YachtStatusPending, YachtStatusApproved, YachtStatusRejected, YachtStatusDisabled:
		return true
	}
	return false
}

// ValidBookingStatus reports whether s is a known booking status.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusRejected:
		return true
	}
	return false
}

// ValidLocation reports whether l is a supported charter location.
func ValidLocation(l string) bool {
	switch l {
	case LocationMarina, LocationJBR, LocationCreek:
		return true
	}
	return false
}
