package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/raywall/retail-services/envloader"
)

type ConfigValidator struct {
	validate *validator.Validate
}

// NewValidator cria uma nova instância do validador
func NewValidator() *ConfigValidator {
	return &ConfigValidator{
		validate: validator.New(),
	}
}

// Validate realiza validações estruturais (tags) e semânticas (lógica)
func (cv *ConfigValidator) Validate(cfg *Config) error {
	if err := cv.validate.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var errMsgs []string
			for _, e := range validationErrors {
				errMsgs = append(errMsgs, fmt.Sprintf("Campo '%s' falhou na regra '%s'", e.Namespace(), e.Tag()))
			}
			return fmt.Errorf("erros de validação estrutural:\n- %s", strings.Join(errMsgs, "\n- "))
		}
		return fmt.Errorf("erro de validação estrutural: %w", err)
	}

	if err := cv.validateSemantics(cfg); err != nil {
		return fmt.Errorf("erro de validação semântica: %w", err)
	}

	return nil
}

func (cv *ConfigValidator) validateSemantics(cfg *Config) error {
	// Uma função Lambda atende exatamente uma operação
	if cfg.Runtime == "lambda" && cfg.Handler == "" {
		return fmt.Errorf("HANDLER é obrigatório quando RUNTIME=lambda")
	}

	// O backend em memória não é compartilhado entre instâncias Lambda
	if cfg.Runtime == "lambda" && cfg.Table.Backend == BackendMemory {
		return fmt.Errorf("TABLE_BACKEND=memory só é suportado com RUNTIME=local")
	}

	return nil
}

// Load lê a configuração do ambiente e valida o resultado.
func Load() (*Config, error) {
	var cfg Config
	if err := envloader.Load(&cfg); err != nil {
		return nil, fmt.Errorf("falha ao carregar configuração: %w", err)
	}
	if err := NewValidator().Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
