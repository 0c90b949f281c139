package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Store implements Database on top of gorm for every supported dialect
type Store struct {
	db *gorm.DB
}

func openStore(dialector gorm.Dialector) (*Store, error) {
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := gormDB.AutoMigrate(allModels()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &Store{db: gormDB}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return getDBFromContext(ctx, s.db)
}

func (s *Store) CreateUser(ctx context.Context, user *User) error {
	return normalizeErr(s.conn(ctx).Create(user).Error)
}

func (s *Store) GetUserByID(ctx context.Context, id uint) (*User, error) {
	var user User
	if err := s.conn(ctx).First(&user, id).Error; err != nil {
		return nil, normalizeErr(err)
	}
	return &user, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	if err := s.conn(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, normalizeErr(err)
	}
	return &user, nil
}

func (s *Store) CreateClient(ctx context.Context, client *Client) error {
	return normalizeErr(s.conn(ctx).Create(client).Error)
}

func (s *Store) GetClient(ctx context.Context, id uint) (*Client, error) {
	var client Client
	if err := s.conn(ctx).First(&client, id).Error; err != nil {
		return nil, normalizeErr(err)
	}
	return &client, nil
}

func (s *Store) GetClientByEmailKey(ctx context.Context, emailKey string) (*Client, error) {
	var client Client
	if err := s.conn(ctx).Where("email_key = ?", emailKey).First(&client).Error; err != nil {
		return nil, normalizeErr(err)
	}
	return &client, nil
}

func (s *Store) FirstOrCreateClientByEmailKey(ctx context.Context, client *Client) (*Client, bool, error) {
	if client.EmailKey == nil {
		return nil, false, fmt.Errorf("client has no email key")
	}
	res := s.conn(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(client)
	if res.Error != nil {
		return nil, false, normalizeErr(res.Error)
	}
	if res.RowsAffected == 1 {
		return client, true, nil
	}
	stored, err := s.GetClientByEmailKey(ctx, *client.EmailKey)
	return stored, false, err
}

func (s *Store) LinkClientToUser(ctx context.Context, clientID, userID uint) error {
	if _, err := s.GetClient(ctx, clientID); err != nil {
		return err
	}
	return normalizeErr(s.conn(ctx).Model(&Client{}).Where("id = ?", clientID).Update("user_id", userID).Error)
}

func (s *Store) ListClientIDsByUser(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := s.conn(ctx).Model(&Client{}).Where("user_id = ?", userID).Pluck("id", &ids).Error
	return ids, normalizeErr(err)
}

func (s *Store) CreateAppointment(ctx context.Context, appt *Appointment) error {
	return normalizeErr(s.conn(ctx).Create(appt).Error)
}

func (s *Store) GetAppointment(ctx context.Context, id uint) (*Appointment, error) {
	var appt Appointment
	if err := s.conn(ctx).First(&appt, id).Error; err != nil {
		return nil, normalizeErr(err)
	}
	return &appt, nil
}

func (s *Store) ListAppointments(ctx context.Context, filter AppointmentFilter) ([]*Appointment, error) {
	q := s.conn(ctx).Model(&Appointment{})
	if filter.Date != "" {
		q = q.Where(clause.Eq{Column: clause.Column{Name: "date"}, Value: filter.Date})
	}
	if filter.From != "" {
		q = q.Where(clause.Gte{Column: clause.Column{Name: "date"}, Value: filter.From})
	}
	if filter.To != "" {
		q = q.Where(clause.Lte{Column: clause.Column{Name: "date"}, Value: filter.To})
	}
	if filter.ClientIDs != nil {
		if len(filter.ClientIDs) == 0 {
			return []*Appointment{}, nil
		}
		q = q.Where("client_id IN ?", filter.ClientIDs)
	}
	var appts []*Appointment
	err := q.Order(byColumn("date")).Order(byColumn("time")).Find(&appts).Error
	return appts, normalizeErr(err)
}

func (s *Store) SlotTaken(ctx context.Context, date, time string, excludeID uint) (bool, error) {
	var count int64
	q := s.conn(ctx).Model(&Appointment{}).Where(map[string]any{"date": date, "time": time})
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, normalizeErr(err)
	}
	return count > 0, nil
}

func (s *Store) UpdateAppointment(ctx context.Context, id uint, patch AppointmentPatch) (*Appointment, error) {
	if _, err := s.GetAppointment(ctx, id); err != nil {
		return nil, err
	}
	if !patch.Empty() {
		if err := s.conn(ctx).Model(&Appointment{}).Where("id = ?", id).Updates(patch.columns()).Error; err != nil {
			return nil, normalizeErr(err)
		}
	}
	return s.GetAppointment(ctx, id)
}

func (s *Store) SetAppointmentPaid(ctx context.Context, id uint, paid bool) error {
	if _, err := s.GetAppointment(ctx, id); err != nil {
		return err
	}
	return normalizeErr(s.conn(ctx).Model(&Appointment{}).Where("id = ?", id).Update("paid", paid).Error)
}

func (s *Store) DeleteAppointment(ctx context.Context, id uint) error {
	res := s.conn(ctx).Delete(&Appointment{}, id)
	if res.Error != nil {
		return normalizeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *Store) ClaimCancel(ctx context.Context, id uint, limit int) (bool, error) {
	res := s.conn(ctx).Model(&Appointment{}).
		Where("id = ? AND client_cancel_count < ?", id, limit).
		UpdateColumn("client_cancel_count", gorm.Expr("client_cancel_count + 1"))
	if res.Error != nil {
		return false, normalizeErr(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (s *Store) ClaimReschedule(ctx context.Context, id uint, date, time string, endTime *string, limit int) (bool, error) {
	res := s.conn(ctx).Model(&Appointment{}).
		Where("id = ? AND client_reschedule_count < ?", id, limit).
		Updates(map[string]any{
			"date":                    date,
			"time":                    time,
			"end_time":                endTime,
			"client_reschedule_count": gorm.Expr("client_reschedule_count + 1"),
		})
	if res.Error != nil {
		return false, normalizeErr(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (s *Store) CreateProfit(ctx context.Context, profit *Profit) error {
	return normalizeErr(s.conn(ctx).Create(profit).Error)
}

func (s *Store) CreateProfitIfAbsent(ctx context.Context, profit *Profit) (bool, error) {
	res := s.conn(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(profit)
	if res.Error != nil {
		return false, normalizeErr(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (s *Store) GetProfitByAppointment(ctx context.Context, appointmentID uint) (*Profit, error) {
	var profit Profit
	if err := s.conn(ctx).Where("appointment_id = ?", appointmentID).First(&profit).Error; err != nil {
		return nil, normalizeErr(err)
	}
	return &profit, nil
}

func (s *Store) GetProfitByTxnID(ctx context.Context, txnID string) (*Profit, error) {
	var profit Profit
	if err := s.conn(ctx).Where("processor_txn_id = ?", txnID).First(&profit).Error; err != nil {
		return nil, normalizeErr(err)
	}
	return &profit, nil
}

func (s *Store) DeleteProfitByAppointment(ctx context.Context, appointmentID uint, processor string) (bool, error) {
	res := s.conn(ctx).Where("appointment_id = ? AND processor = ?", appointmentID, processor).Delete(&Profit{})
	if res.Error != nil {
		return false, normalizeErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *Store) CreateScheduleBlock(ctx context.Context, block *ScheduleBlock) error {
	return normalizeErr(s.conn(ctx).Create(block).Error)
}

func (s *Store) ListScheduleBlocks(ctx context.Context, date string) ([]*ScheduleBlock, error) {
	q := s.conn(ctx).Model(&ScheduleBlock{})
	if date != "" {
		q = q.Where(map[string]any{"date": date})
	}
	var blocks []*ScheduleBlock
	err := q.Order(byColumn("date")).Order(byColumn("time_slot")).Find(&blocks).Error
	return blocks, normalizeErr(err)
}

func (s *Store) SlotBlocked(ctx context.Context, date, time string) (bool, error) {
	var count int64
	err := s.conn(ctx).Model(&ScheduleBlock{}).Where(map[string]any{"date": date, "time_slot": time}).Count(&count).Error
	return count > 0, normalizeErr(err)
}

func (s *Store) DeleteScheduleBlock(ctx context.Context, id uint) error {
	res := s.conn(ctx).Delete(&ScheduleBlock{}, id)
	if res.Error != nil {
		return normalizeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *Store) CreateWeeklyAvailability(ctx context.Context, rows []*WeeklyAvailability) error {
	if len(rows) == 0 {
		return nil
	}
	return normalizeErr(s.conn(ctx).Create(rows).Error)
}

func (s *Store) ListWeeklyAvailability(ctx context.Context, weekday int, appointmentType string) ([]*WeeklyAvailability, error) {
	q := s.conn(ctx).Model(&WeeklyAvailability{})
	if weekday >= 0 {
		q = q.Where("weekday = ?", weekday)
	}
	if appointmentType != "" {
		q = q.Where("appointment_type = ?", appointmentType)
	}
	var rows []*WeeklyAvailability
	err := q.Order("weekday asc").Order("start_time asc").Find(&rows).Error
	return rows, normalizeErr(err)
}

// byColumn quotes the column, date and time are keywords in some dialects
func byColumn(name string) clause.OrderByColumn {
	return clause.OrderByColumn{Column: clause.Column{Name: name}}
}
