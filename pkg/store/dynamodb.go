// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/rsiewert/flavor-buddy/pkg/record"
)

// DynamoAPI is the subset of the DynamoDB client the store calls.
type DynamoAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoDB stores each collection in its own table keyed by record.KeyField.
type DynamoDB struct {
	client DynamoAPI
	tables map[Collection]string
}

// NewDynamoDB returns a store over an existing client. tables maps every
// collection to its table name.
func NewDynamoDB(client DynamoAPI, tables map[Collection]string) (*DynamoDB, error) {
	if client == nil {
		return nil, fmt.Errorf("dynamodb client is nil")
	}
	for _, c := range []Collection{Foods, Users} {
		if tables[c] == "" {
			return nil, fmt.Errorf("no dynamodb table configured for collection %q", c)
		}
	}
	return &DynamoDB{client: client, tables: tables}, nil
}

// NewDynamoDBClient loads the default AWS configuration (execution role
// credentials inside Lambda) and builds a client. A non-empty endpoint
// overrides the service endpoint, e.g. for DynamoDB Local.
func NewDynamoDBClient(ctx context.Context, region, endpoint string) (*dynamodb.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

func (d *DynamoDB) key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		record.KeyField: &types.AttributeValueMemberS{Value: id},
	}
}

func (d *DynamoDB) Get(ctx context.Context, c Collection, id string) (record.Record, error) {
	if err := validate(c, id); err != nil {
		return nil, err
	}

	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.tables[c]),
		Key:       d.key(id),
	})
	if err != nil {
		return nil, storageFailure("get", c, err)
	}
	if len(out.Item) == 0 {
		return nil, notFound(c, id)
	}

	var r record.Record
	if err := attributevalue.UnmarshalMap(out.Item, &r); err != nil {
		return nil, storageFailure("decode", c, err)
	}
	return r, nil
}

func (d *DynamoDB) Put(ctx context.Context, c Collection, r record.Record) error {
	if err := validate(c, r.ID()); err != nil {
		return err
	}

	item, err := attributevalue.MarshalMap(map[string]any(r.Plain()))
	if err != nil {
		return storageFailure("encode", c, err)
	}

	if _, err := d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.tables[c]),
		Item:      item,
	}); err != nil {
		return storageFailure("put", c, err)
	}
	return nil
}

func (d *DynamoDB) Delete(ctx context.Context, c Collection, id string) error {
	if err := validate(c, id); err != nil {
		return err
	}

	if _, err := d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(d.tables[c]),
		Key:       d.key(id),
	}); err != nil {
		return storageFailure("delete", c, err)
	}
	return nil
}

func (d *DynamoDB) Scan(ctx context.Context, c Collection) ([]record.Record, error) {
	if err := validateCollection(c); err != nil {
		return nil, err
	}

	var out []record.Record
	pages := dynamodb.NewScanPaginator(d.client, &dynamodb.ScanInput{
		TableName: aws.String(d.tables[c]),
	})
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return nil, storageFailure("scan", c, err)
		}

		var items []record.Record
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, storageFailure("decode", c, err)
		}
		out = append(out, items...)
	}

	slog.Debug("dynamodb scan complete",
		"collection", c.String(),
		"table", d.tables[c],
		"items", len(out))

	return out, nil
}
