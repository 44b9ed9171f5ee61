package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Quantity aceita um número JSON ou uma string numérica. Valores
// fracionários são truncados em direção a zero.
type Quantity int64

func (q *Quantity) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))

	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n, err := ParseQuantity(s)
		if err != nil {
			return err
		}
		*q = n
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return fmt.Errorf("quantity must be a number, got %s", raw)
	}
	if n, err := num.Int64(); err == nil {
		*q = Quantity(n)
		return nil
	}
	f, err := num.Float64()
	if err != nil || math.IsNaN(f) || f >= math.MaxInt64 || f <= math.MinInt64 {
		return fmt.Errorf("quantity %s is out of range", raw)
	}
	*q = Quantity(int64(f))
	return nil
}

// ParseQuantity converte uma string (ex: query string) em Quantity.
func ParseQuantity(s string) (Quantity, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("quantity %q is not an integer", s)
	}
	return Quantity(n), nil
}

// CreateStoreItemRequest é o corpo de POST /create-store-item.
type CreateStoreItemRequest struct {
	ItemName string    `json:"itemName" validate:"required"`
	Quantity *Quantity `json:"quantity" validate:"required"`
}

// StockQuery são os parâmetros de GET /is-item-in-stock.
type StockQuery struct {
	ItemName string `json:"itemName" validate:"required"`
	Quantity string `json:"quantity" validate:"required"`
}

// ItemRef identifica um item e uma quantidade dentro de eventos de workflow.
type ItemRef struct {
	ItemName string    `json:"itemName" validate:"required"`
	Quantity *Quantity `json:"quantity" validate:"required"`
}

// ItemEvent é a entrada das tarefas de workflow: {"item": {...}}.
type ItemEvent struct {
	Item *ItemRef `json:"item" validate:"required"`
}

// CreateOrderRequest é o corpo de POST /create-order. Items é opaco.
type CreateOrderRequest struct {
	Items []any `json:"items" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Usa o nome JSON nas mensagens de erro
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// decode faz o parse de um JSON e valida a struct resultante. Qualquer falha
// vira *InvalidInput.
func decode(data []byte, dst any) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return &InvalidInput{Reason: "request body is empty"}
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return &InvalidInput{Reason: "invalid request body: " + err.Error()}
	}
	return check(dst)
}

// check valida uma struct já preenchida.
func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return &InvalidInput{Reason: err.Error()}
	}

	msgs := make([]string, 0, len(vErrs))
	for _, e := range vErrs {
		msgs = append(msgs, fmt.Sprintf("field '%s' failed on '%s'", fieldPath(e.Namespace()), e.Tag()))
	}
	return &InvalidInput{Reason: "invalid request: " + strings.Join(msgs, "; ")}
}

// fieldPath remove o nome da struct raiz: "ItemEvent.item.itemName" -> "item.itemName".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
