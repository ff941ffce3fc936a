package staff

import (
	"context"
	"errors"
	"sort"
	"strings"

	"crm-console-backend/internal/database"
	"crm-console-backend/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var ErrNotFound = errors.New("staff repository: not found")

type Repository interface {
	CreateStaff(ctx context.Context, staff model.StaffItem) error
	PutStaff(ctx context.Context, staff model.StaffItem) error
	GetStaff(ctx context.Context, staffID string) (model.StaffItem, error)
	FindStaffByEmail(ctx context.Context, email string) (model.StaffItem, error)
	ListStaff(ctx context.Context) ([]model.StaffItem, error)
}

type DynamoRepository struct {
	db *database.Database
}

func NewDynamoRepository(db *database.Database) Repository {
	return &DynamoRepository{db: db}
}

func (r *DynamoRepository) CreateStaff(ctx context.Context, staff model.StaffItem) error {
	return r.db.Client.PutItem(ctx, model.StaffTable, staff)
}

func (r *DynamoRepository) PutStaff(ctx context.Context, staff model.StaffItem) error {
	return r.db.Client.PutItem(ctx, model.StaffTable, staff)
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
		if isNotFoundError(err) {
			return model.StaffItem{}, ErrNotFound
		}
		return model.StaffItem{}, err
	}

	return staff, nil
}

func (r *DynamoRepository) FindStaffByEmail(ctx context.Context, email string) (model.StaffItem, error) {
	items, err := r.db.Client.QueryItems(
		ctx,
		model.StaffTable,
		aws.String("byEmail"),
		"email = :email",
		map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: email},
		},
		nil,
		nil,
	)
	if err != nil {
		return model.StaffItem{}, err
	}

	if len(items) == 0 {
		return model.StaffItem{}, ErrNotFound
	}

	var staff model.StaffItem
	if err := attributevalue.UnmarshalMap(items[0], &staff); err != nil {
		return model.StaffItem{}, err
	}

	return staff, nil
}

func (r *DynamoRepository) ListStaff(ctx context.Context) ([]model.StaffItem, error) {
	raw, err := r.db.Client.ScanAll(ctx, model.StaffTable)
	if err != nil {
		return nil, err
	}

	members := make([]model.StaffItem, 0, len(raw))
	for _, attrs := range raw {
		var staff model.StaffItem
		if err := attributevalue.UnmarshalMap(attrs, &staff); err != nil {
			return nil, err
		}
		members = append(members, staff)
	}

	sort.SliceStable(members, func(i, j int) bool {
		return members[i].DisplayName() < members[j].DisplayName()
	})
	return members, nil
}

func isNotFoundError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "item not found")
}
