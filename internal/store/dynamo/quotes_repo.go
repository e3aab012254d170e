package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"

	"github.com/insurly/autoquote/internal/core"
)

// QuoteItem is the stored shape of a quote. Money fields are fixed-point
// strings; timestamps are RFC3339.
type QuoteItem struct {
	ID             string `dynamodbav:"id"`
	Premium        string `dynamodbav:"premium"`
	MonthlyPremium string `dynamodbav:"monthly_premium"`
	CoverageAmount string `dynamodbav:"coverage_amount"`
	Deductible     string `dynamodbav:"deductible"`
	ValidUntil     string `dynamodbav:"valid_until"`
	CreatedAt      string `dynamodbav:"created_at"`

	VehicleMake         string `dynamodbav:"vehicle_make"`
	VehicleModel        string `dynamodbav:"vehicle_model"`
	VehicleYear         int    `dynamodbav:"vehicle_year"`
	VehicleVIN          string `dynamodbav:"vehicle_vin"`
	VehicleCurrentValue string `dynamodbav:"vehicle_current_value"`

	PrimaryDriverName    string `dynamodbav:"primary_driver_name"`
	PrimaryDriverLicense string `dynamodbav:"primary_driver_license"`

	DiscountsApplied []string `dynamodbav:"discounts_applied"`
}

func (i QuoteItem) ToCore() (core.Quote, error) {
	premium, err := decimal.NewFromString(i.Premium)
	if err != nil {
		return core.Quote{}, err
	}
	monthly, err := decimal.NewFromString(i.MonthlyPremium)
	if err != nil {
		return core.Quote{}, err
	}
	coverage, err := decimal.NewFromString(i.CoverageAmount)
	if err != nil {
		return core.Quote{}, err
	}
	deductible, err := decimal.NewFromString(i.Deductible)
	if err != nil {
		return core.Quote{}, err
	}
	value, err := decimal.NewFromString(i.VehicleCurrentValue)
	if err != nil {
		return core.Quote{}, err
	}
	validUntil, err := time.Parse(time.RFC3339, i.ValidUntil)
	if err != nil {
		return core.Quote{}, err
	}
	createdAt, err := time.Parse(time.RFC3339, i.CreatedAt)
	if err != nil {
		return core.Quote{}, err
	}

	return core.Quote{
		ID:             i.ID,
		Premium:        premium,
		MonthlyPremium: monthly,
		CoverageAmount: coverage,
		Deductible:     deductible,
		ValidUntil:     validUntil,
		CreatedAt:      createdAt,

		VehicleMake:         i.VehicleMake,
		VehicleModel:        i.VehicleModel,
		VehicleYear:         i.VehicleYear,
		VehicleVIN:          i.VehicleVIN,
		VehicleCurrentValue: value,

		PrimaryDriverName:    i.PrimaryDriverName,
		PrimaryDriverLicense: i.PrimaryDriverLicense,

		DiscountsApplied: i.DiscountsApplied,
	}, nil
}

func quoteItemFromCore(q core.Quote) QuoteItem {
	return QuoteItem{
		ID:             q.ID,
		Premium:        q.Premium.StringFixed(2),
		MonthlyPremium: q.MonthlyPremium.StringFixed(2),
		CoverageAmount: q.CoverageAmount.StringFixed(2),
		Deductible:     q.Deductible.StringFixed(2),
		ValidUntil:     q.ValidUntil.Format(time.RFC3339),
		CreatedAt:      q.CreatedAt.Format(time.RFC3339),

		VehicleMake:         q.VehicleMake,
		VehicleModel:        q.VehicleModel,
		VehicleYear:         q.VehicleYear,
		VehicleVIN:          q.VehicleVIN,
		VehicleCurrentValue: q.VehicleCurrentValue.StringFixed(2),

		PrimaryDriverName:    q.PrimaryDriverName,
		PrimaryDriverLicense: q.PrimaryDriverLicense,

		DiscountsApplied: q.DiscountsApplied,
	}
}

type QuoteRepo struct {
	client *dynamodb.Client
}

func NewQuoteRepo(client *dynamodb.Client) *QuoteRepo {
	return &QuoteRepo{client: client}
}

func (r *QuoteRepo) Save(ctx context.Context, q core.Quote) (core.Quote, error) {
	item := quoteItemFromCore(q)
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return core.Quote{}, fmt.Errorf("quotes.marshal: %w", err)
	}

	cond := expression.AttributeNotExists(expression.Name("id"))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return core.Quote{}, fmt.Errorf("quotes.buildExpr: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(TableQuotes),
		Item:                      av,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return core.Quote{}, core.ErrConflict
		}
		return core.Quote{}, fmt.Errorf("quotes.putItem: %w", err)
	}

	return q, nil
}

func (r *QuoteRepo) FindByID(ctx context.Context, id string) (core.Quote, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(TableQuotes),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return core.Quote{}, fmt.Errorf("quotes.getItem: %w", err)
	}

	if out.Item == nil {
		return core.Quote{}, core.ErrQuoteNotFound
	}

	var item QuoteItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return core.Quote{}, fmt.Errorf("quotes.unmarshal: %w", err)
	}

	return item.ToCore()
}

// DeleteExpired scans for quotes whose validity ended before the cutoff and
// deletes them one by one. RFC3339 strings compare lexicographically, so
// the filter works on the stored representation.
func (r *QuoteRepo) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	filter := expression.Name("valid_until").LessThan(expression.Value(before.Format(time.RFC3339)))
	expr, err := expression.NewBuilder().WithFilter(filter).
		WithProjection(expression.NamesList(expression.Name("id"))).Build()
	if err != nil {
		return 0, fmt.Errorf("quotes.buildExpr: %w", err)
	}

	deleted := 0
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:                 aws.String(TableQuotes),
			FilterExpression:          expr.Filter(),
			ProjectionExpression:      expr.Projection(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return deleted, fmt.Errorf("quotes.scan: %w", err)
		}

		for _, item := range out.Items {
			_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
				TableName: aws.String(TableQuotes),
				Key:       map[string]types.AttributeValue{"id": item["id"]},
			})
			if err != nil {
				return deleted, fmt.Errorf("quotes.deleteItem: %w", err)
			}
			deleted++
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	return deleted, nil
}
