package mock

import (
	"context"

	"github.com/fwojciec/worldart"
)

var _ worldart.RecordService = (*RecordService)(nil)

// RecordService is a mock implementation of worldart.RecordService.
type RecordService struct {
	CreateRecordFn   func(ctx context.Context, rec *worldart.Record) error
	FindRecordByIDFn func(ctx context.Context, id string) (*worldart.Record, error)
	FindRecordsFn    func(ctx context.Context, filter worldart.RecordFilter) ([]*worldart.Record, error)
	UpdateRecordFn   func(ctx context.Context, rec *worldart.Record) error
	DeleteRecordFn   func(ctx context.Context, id string) error
}

func (s *RecordService) CreateRecord(ctx context.Context, rec *worldart.Record) error {
	return s.CreateRecordFn(ctx, rec)
}

func (s *RecordService) FindRecordByID(ctx context.Context, id string) (*worldart.Record, error) {
	return s.FindRecordByIDFn(ctx, id)
}

func (s *RecordService) FindRecords(ctx context.Context, filter worldart.RecordFilter) ([]*worldart.Record, error) {
	return s.FindRecordsFn(ctx, filter)
}

func (s *RecordService) UpdateRecord(ctx context.Context, rec *worldart.Record) error {
	return s.UpdateRecordFn(ctx, rec)
}

func (s *RecordService) DeleteRecord(ctx context.Context, id string) error {
	return s.DeleteRecordFn(ctx, id)
}
