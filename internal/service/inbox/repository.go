package inbox

import (
	"context"
	"errors"
	"sort"
	"strings"

	"crm-console-backend/internal/database"
	"crm-console-backend/internal/model"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var ErrNotFound = errors.New("inbox repository: not found")

type Repository interface {
	GetChat(ctx context.Context, contactID string) (model.ChatItem, error)
	PutChat(ctx context.Context, chat model.ChatItem) error
	ListChats(ctx context.Context) ([]model.ChatItem, error)
	GetStaff(ctx context.Context, staffID string) (model.StaffItem, error)
	GetLabel(ctx context.Context, labelID string) (model.LabelItem, error)
	PutLabel(ctx context.Context, label model.LabelItem) error
	ListLabels(ctx context.Context) ([]model.LabelItem, error)
}

type DynamoRepository struct {
	db *database.Database
}

func NewDynamoRepository(db *database.Database) Repository {
	return &DynamoRepository{db: db}
}

func (r *DynamoRepository) GetChat(ctx context.Context, contactID string) (model.ChatItem, error) {
	var chat model.ChatItem
	err := r.db.Client.GetItem(
		ctx,
		model.ChatsTable,
		map[string]types.AttributeValue{
			"contactId": &types.AttributeValueMemberS{Value: contactID},
		},
		&chat,
	)
	if err != nil {
		if isNotFound(err) {
			return model.ChatItem{}, ErrNotFound
		}
		return model.ChatItem{}, err
	}
	return chat, nil
}

func (r *DynamoRepository) PutChat(ctx context.Context, chat model.ChatItem) error {
	return r.db.Client.PutItem(ctx, model.ChatsTable, chat)
}

// ListChats returns the whole inbox ordered by last message time, newest
// first. The filter engine downstream preserves this order.
func (r *DynamoRepository) ListChats(ctx context.Context) ([]model.ChatItem, error) {
	raw, err := r.db.Client.ScanAll(ctx, model.ChatsTable)
	if err != nil {
		return nil, err
	}

	chats := make([]model.ChatItem, 0, len(raw))
	for _, attrs := range raw {
		var chat model.ChatItem
		if err := attributevalue.UnmarshalMap(attrs, &chat); err != nil {
			return nil, err
		}
		chats = append(chats, chat)
	}

	sort.SliceStable(chats, func(i, j int) bool {
		return chats[i].LastMessageAt > chats[j].LastMessageAt
	})
	return chats, nil
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

func (r *DynamoRepository) GetLabel(ctx context.Context, labelID string) (model.LabelItem, error) {
	var label model.LabelItem
	err := r.db.Client.GetItem(
		ctx,
		model.LabelsTable,
		map[string]types.AttributeValue{
			"labelId": &types.AttributeValueMemberS{Value: labelID},
		},
		&label,
	)
	if err != nil {
		if isNotFound(err) {
			return model.LabelItem{}, ErrNotFound
		}
		return model.LabelItem{}, err
	}
	return label, nil
}

func (r *DynamoRepository) PutLabel(ctx context.Context, label model.LabelItem) error {
	return r.db.Client.PutItem(ctx, model.LabelsTable, label)
}

func (r *DynamoRepository) ListLabels(ctx context.Context) ([]model.LabelItem, error) {
	raw, err := r.db.Client.ScanAll(ctx, model.LabelsTable)
	if err != nil {
		return nil, err
	}

	labels := make([]model.LabelItem, 0, len(raw))
	for _, attrs := range raw {
		var label model.LabelItem
		if err := attributevalue.UnmarshalMap(attrs, &label); err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}

	sort.SliceStable(labels, func(i, j int) bool {
		return labels[i].Name < labels[j].Name
	})
	return labels, nil
}

func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "item not found")
}
