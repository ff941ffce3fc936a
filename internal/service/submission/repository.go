package submission

import (
	"context"
	"errors"
	"strings"

	"crm-console-backend/internal/database"
	"crm-console-backend/internal/model"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var ErrNotFound = errors.New("submission repository: not found")

type Repository interface {
	GetSubmission(ctx context.Context, submissionID string) (model.SubmissionItem, error)
	PutSubmission(ctx context.Context, item model.SubmissionItem) error
	ListSubmissions(ctx context.Context) ([]model.SubmissionItem, error)
	CountByType(ctx context.Context, subType model.SubmissionType) (int, error)
	GetStaff(ctx context.Context, staffID string) (model.StaffItem, error)
}

type DynamoRepository struct {
	db *database.Database
}

func NewDynamoRepository(db *database.Database) Repository {
	return &DynamoRepository{db: db}
}

func (r *DynamoRepository) GetSubmission(ctx context.Context, submissionID string) (model.SubmissionItem, error) {
	var item model.SubmissionItem
	err := r.db.Client.GetItem(
		ctx,
		model.SubmissionsTable,
		map[string]types.AttributeValue{
			"submissionId": &types.AttributeValueMemberS{Value: submissionID},
		},
		&item,
	)
	if err != nil {
		if isNotFound(err) {
			return model.SubmissionItem{}, ErrNotFound
		}
		return model.SubmissionItem{}, err
	}
	return item, nil
}

func (r *DynamoRepository) PutSubmission(ctx context.Context, item model.SubmissionItem) error {
	return r.db.Client.PutItem(ctx, model.SubmissionsTable, item)
}

func (r *DynamoRepository) ListSubmissions(ctx context.Context) ([]model.SubmissionItem, error) {
	raw, err := r.db.Client.ScanAll(ctx, model.SubmissionsTable)
	if err != nil {
		return nil, err
	}

	items := make([]model.SubmissionItem, 0, len(raw))
	for _, attrs := range raw {
		var item model.SubmissionItem
		if err := attributevalue.UnmarshalMap(attrs, &item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *DynamoRepository) CountByType(ctx context.Context, subType model.SubmissionType) (int, error) {
	raw, err := r.db.Client.ScanAllWithFilter(
		ctx,
		model.SubmissionsTable,
		"#type = :type",
		map[string]types.AttributeValue{
			":type": &types.AttributeValueMemberS{Value: string(subType)},
		},
		map[string]string{
			"#type": "type",
		},
	)
	if err != nil {
		return 0, err
	}
	return len(raw), nil
}

func (r *DynamoRepository) GetStaff(ctx context.Context, staffID string) (model.StaffItem, error) {
	var staff model.StaffItem
	err := r.db.Client.GetItem(
		ctx,
		model.StaffTable,
		map[string]types.AttributeValue{
			"staffId": &types.AttributeValueMemberS{Value: staffID},
		},
		&staff,
	)
	if err != nil {
		if isNotFound(err) {
			return model.StaffItem{}, ErrNotFound
		}
		return model.StaffItem{}, err
	}
	return staff, nil
}

func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "item not found")
}
