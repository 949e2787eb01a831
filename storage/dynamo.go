package storage

import (
	"context"
	"fmt"
	"os"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DynamoAPI is the subset of the DynamoDB client used by Dynamo
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// Dynamo stores keys in a table with string partition key `pk`
type Dynamo struct {
	client  DynamoAPI
	table   string
	profile string
}

type ddbEntry struct {
	PK    string `dynamodbav:"pk"`
	Value string `dynamodbav:"value"`
}

func NewDynamo(client DynamoAPI, table, profile string) *Dynamo {
	return &Dynamo{client: client, table: table, profile: profile}
}

// NewDynamoClient loads AWS config and returns a DynamoDB client. AWS_ENDPOINT
// points the client at LocalStack or DynamoDB Local.
func NewDynamoClient(ctx context.Context) (*dynamodb.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	endpoint := os.Getenv("AWS_DYNAMODB_ENDPOINT")
	if endpoint == "" {
		endpoint = os.Getenv("AWS_ENDPOINT")
	}
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = sdkaws.String(endpoint)
		}
	}), nil
}

func (d *Dynamo) pk(key string) string {
	return d.profile + "#" + key
}

func (d *Dynamo) Get(ctx context.Context, key string) (string, bool, error) {
	k, err := attributevalue.MarshalMap(map[string]string{"pk": d.pk(key)})
	if err != nil {
		return "", false, fmt.Errorf("marshal key: %w", err)
	}
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &d.table,
		Key:            k,
		ConsistentRead: sdkaws.Bool(true),
	})
	if err != nil {
		return "", false, fmt.Errorf("dynamodb GetItem failed: %w", err)
	}
	if len(out.Item) == 0 {
		return "", false, nil
	}
	var entry ddbEntry
	if err := attributevalue.UnmarshalMap(out.Item, &entry); err != nil {
		return "", false, fmt.Errorf("unmarshal item: %w", err)
	}
	return entry.Value, true, nil
}

func (d *Dynamo) Set(ctx context.Context, key, value string) error {
	item, err := attributevalue.MarshalMap(ddbEntry{PK: d.pk(key), Value: value})
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}
	if _, err := d.client.PutItem(ctx, &dynamodb.PutItemInput{TableName: &d.table, Item: item}); err != nil {
		return fmt.Errorf("dynamodb PutItem failed: %w", err)
	}
	return nil
}

func (d *Dynamo) Remove(ctx context.Context, key string) error {
	k, err := attributevalue.MarshalMap(map[string]string{"pk": d.pk(key)})
	if err != nil {
		return fmt.Errorf("marshal key: %w", err)
	}
	if _, err := d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{TableName: &d.table, Key: k}); err != nil {
		return fmt.Errorf("dynamodb DeleteItem failed: %w", err)
	}
	return nil
}
