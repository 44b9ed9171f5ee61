package awsconf

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/raywall/retail-services/pkg/config"
)

// loadDefaultConfig é substituível nos testes.
var loadDefaultConfig = awsconfig.LoadDefaultConfig

// Clients agrupa os clientes AWS do processo. São criados uma única vez
// na inicialização e reaproveitados por todas as invocações.
type Clients struct {
	DynamoDB *dynamodb.Client
	SSM      *ssm.Client
	SQS      *sqs.Client
}

// Load carrega a configuração da AWS (env vars, profile, IAM role).
func Load(ctx context.Context, cfg config.AWSConf) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}

	awsCfg, err := loadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("erro ao carregar configuração AWS: %w", err)
	}
	return awsCfg, nil
}

// NewClients cria os clientes a partir de uma aws.Config já carregada.
// DYNAMODB_ENDPOINT aponta o DynamoDB para um endpoint alternativo (ex: DynamoDB Local).
func NewClients(awsCfg aws.Config, cfg config.AWSConf) *Clients {
	return &Clients{
		DynamoDB: dynamodb.NewFromConfig(awsCfg, dynamoOptions(cfg)...),
		SSM:      ssm.NewFromConfig(awsCfg),
		SQS:      sqs.NewFromConfig(awsCfg),
	}
}

func dynamoOptions(cfg config.AWSConf) []func(*dynamodb.Options) {
	if cfg.DynamoDBEndpoint == "" {
		return nil
	}
	endpoint := cfg.DynamoDBEndpoint
	return []func(*dynamodb.Options){
		func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		},
	}
}
