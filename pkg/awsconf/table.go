package awsconf

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/raywall/retail-services/pkg/config"
)

// SSMClient abstrai o SDK da AWS (permite mocking).
type SSMClient interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

var _ SSMClient = (*ssm.Client)(nil)

// ErrEmptyParameter indica que o parâmetro existe mas não tem valor.
var ErrEmptyParameter = errors.New("awsconf: parameter has no value")

// ResolveTableName devolve o nome da tabela. STORE_TABLE_NAME tem precedência;
// sem ele, o nome é lido do parâmetro SSM em STORE_TABLE_PARAMETER.
func ResolveTableName(ctx context.Context, client SSMClient, cfg config.TableConf) (string, error) {
	if cfg.Name != "" {
		return cfg.Name, nil
	}
	if cfg.Parameter == "" {
		return "", errors.New("awsconf: STORE_TABLE_NAME ou STORE_TABLE_PARAMETER deve ser informado")
	}
	if client == nil {
		return "", errors.New("awsconf: cliente SSM não configurado")
	}

	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name: aws.String(cfg.Parameter),
	})
	if err != nil {
		return "", fmt.Errorf("erro no SSM GetParameter %s: %w", cfg.Parameter, err)
	}
	if out.Parameter == nil || aws.ToString(out.Parameter.Value) == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyParameter, cfg.Parameter)
	}
	return aws.ToString(out.Parameter.Value), nil
}
