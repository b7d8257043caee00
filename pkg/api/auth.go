package api

type LoginRequest struct {
	Passphrase string `json:"passphrase"`
	DeviceName string `json:"deviceName" validate:"max=60"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	DeviceID  string `json:"deviceId"`
	ExpiresAt int64  `json:"expiresAt"`
}
