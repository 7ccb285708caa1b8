package auth

import "github.com/golang-jwt/jwt/v5"

// Role labels the two account kinds a token can represent.
type Role string

const (
	RolePatient  Role = "patient"
	RoleHospital Role = "hospital"
)

func (r Role) IsValid() bool {
	return r == RolePatient || r == RoleHospital
}

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	SubjectID string
	Email     string
	Role      Role
}

// AccessTokenClaims represents the typed JWT issued to clients. SubjectID is
// the public patientId or hospitalId depending on Role.
type AccessTokenClaims struct {
	SubjectID string `json:"subject_id"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	jwt.RegisteredClaims
}
