package dto

// Response is the envelope every endpoint returns. StatusCode mirrors the
// actual HTTP status so frontends can branch without inspecting transport
// details.
type Response struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Message    *string     `json:"message"`
	StatusCode int         `json:"statusCode"`
}

func OK(data interface{}, message string) Response {
	resp := Response{Success: true, Data: data, StatusCode: 200}
	if message != "" {
		resp.Message = &message
	}
	return resp
}

func Fail(message string, statusCode int) Response {
	return Response{Success: false, Message: &message, StatusCode: statusCode}
}
