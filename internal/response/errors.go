package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrTeacherUnknown     ErrCode = "TEACHER_UNKNOWN"
	ErrTeacherResigned    ErrCode = "TEACHER_RESIGNED"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrPermissionDenied ErrCode = "PERMISSION_DENIED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"
	ErrUnknownSetting ErrCode = "UNKNOWN_SETTING"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"

	// ─── Reports ───────────────────────────────────────────────────────
	ErrReportSuperseded ErrCode = "REPORT_SUPERSEDED"

	// ─── Upstream ──────────────────────────────────────────────────────
	ErrUpstreamUnavailable ErrCode = "UPSTREAM_UNAVAILABLE"
	ErrUpstreamTimeout     ErrCode = "UPSTREAM_TIMEOUT"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrTeacherUnknown:
		return "Fant ingen lærer med denne brukeren."
	case ErrTeacherResigned:
		return "Læreren har sluttet og kan ikke logge inn."
	case ErrSessionInvalidated:
		return "Økten er avsluttet. Logg inn på nytt."
	case ErrTokenRequired:
		return "Innloggingstoken mangler."
	case ErrTokenInvalid:
		return "Innloggingstoken er ugyldig eller utløpt."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrPermissionDenied:
		return "Du har ikke tilgang til denne ressursen."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Valideringen feilet. Sjekk feltene og prøv igjen."
	case ErrInvalidPayload:
		return "Forespørselen er ugyldig."
	case ErrUnknownSetting:
		return "Ukjent innstilling."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Fant ikke ressursen."

	// ─── Reports ───────────────────────────────────────────────────────
	case ErrReportSuperseded:
		return "En nyere rapport ble bestilt før denne ble ferdig."

	// ─── Upstream ──────────────────────────────────────────────────────
	case ErrUpstreamUnavailable:
		return "Klarte ikke å hente data fra baksystemet."
	case ErrUpstreamTimeout:
		return "Baksystemet svarte ikke i tide."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "For mange forespørsler. Prøv igjen senere."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Det oppstod en intern feil."
	default:
		return "Det oppstod en uventet feil."
	}
}
