package handler

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// Response é o formato devolvido pelas tarefas de workflow, o mesmo da
// integração proxy do API Gateway: body é o JSON de {"message": ...}.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

type messageBody struct {
	Message string `json:"message"`
}

// MessageBody serializa {"message": msg} sem escapar HTML, já que nomes de
// itens chegam ao cliente como foram gravados.
func MessageBody(msg string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(messageBody{Message: msg})
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}

func workflowOK(msg string) Response {
	return Response{StatusCode: http.StatusOK, Body: MessageBody(msg)}
}

func apiResponse(status int, msg string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       MessageBody(msg),
	}
}

func apiOK(msg string) events.APIGatewayProxyResponse {
	return apiResponse(http.StatusOK, msg)
}

// apiError traduz o erro de uma operação HTTP: entrada inválida vira 400,
// o resto vira 500 sem expor a causa.
func apiError(err error) events.APIGatewayProxyResponse {
	if in, ok := err.(*InvalidInput); ok {
		return apiResponse(http.StatusBadRequest, in.Reason)
	}
	return apiResponse(http.StatusInternalServerError, "internal server error")
}
