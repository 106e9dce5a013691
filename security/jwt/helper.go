package jwt

import "time"

// getPayloadFromClaims extracts the payload from token claims
func getPayloadFromClaims(claims map[string]any) (map[string]any, bool) {
	payloadAny, ok := claims["payload"]
	if !ok {
		return nil, false
	}
	payload, ok := payloadAny.(map[string]any)
	return payload, ok
}

// GetUserIDFromToken gets the user ID from the token
func GetUserIDFromToken(claims map[string]any) string {
	if payload, ok := getPayloadFromClaims(claims); ok {
		if userID, ok := payload["user_id"].(string); ok {
			return userID
		}
	}
	return ""
}

// GetExpiryFromToken extracts the expiration time from token claims
func GetExpiryFromToken(claims map[string]any) (time.Time, error) {
	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, ErrTokenParsing
	}
	return time.Unix(int64(exp), 0), nil
}
