package reward

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kotaeba/kotaeba-backend/internal/config"
	"github.com/kotaeba/kotaeba-backend/internal/domain"
	"github.com/kotaeba/kotaeba-backend/pkg/ctxutil"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type mockContributionRepo struct {
	RecordAnswerFunc     func(ctx context.Context, period domain.Period, userID, answerID uuid.UUID) error
	RecordBestAnswerFunc func(ctx context.Context, period domain.Period, userID uuid.UUID) error
	ListByPeriodFunc     func(ctx context.Context, period domain.Period) ([]*domain.ContributionRecord, error)
}

func (m *mockContributionRepo) RecordAnswer(ctx context.Context, period domain.Period, userID, answerID uuid.UUID) error {
	if m.RecordAnswerFunc != nil {
		return m.RecordAnswerFunc(ctx, period, userID, answerID)
	}
	return nil
}

func (m *mockContributionRepo) RecordBestAnswer(ctx context.Context, period domain.Period, userID uuid.UUID) error {
	if m.RecordBestAnswerFunc != nil {
		return m.RecordBestAnswerFunc(ctx, period, userID)
	}
	return nil
}

func (m *mockContributionRepo) ListByPeriod(ctx context.Context, period domain.Period) ([]*domain.ContributionRecord, error) {
	if m.ListByPeriodFunc != nil {
		return m.ListByPeriodFunc(ctx, period)
	}
	return nil, nil
}

type mockPoolRepo struct {
	AddFundsFunc     func(ctx context.Context, scope domain.PoolScope, amount int64) error
	GetFunc          func(ctx context.Context, scope domain.PoolScope) (*domain.RewardPool, error)
	GetForUpdateFunc func(ctx context.Context, scope domain.PoolScope) (*domain.RewardPool, error)
	CloseFunc        func(ctx context.Context, scope domain.PoolScope, distributedAmount, totalPoints int64, isTest bool) error
}

func (m *mockPoolRepo) AddFunds(ctx context.Context, scope domain.PoolScope, amount int64) error {
	if m.AddFundsFunc != nil {
		return m.AddFundsFunc(ctx, scope, amount)
	}
	return nil
}

func (m *mockPoolRepo) Get(ctx context.Context, scope domain.PoolScope) (*domain.RewardPool, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, scope)
	}
	return nil, domain.ErrNotFound
}

func (m *mockPoolRepo) GetForUpdate(ctx context.Context, scope domain.PoolScope) (*domain.RewardPool, error) {
	if m.GetForUpdateFunc != nil {
		return m.GetForUpdateFunc(ctx, scope)
	}
	return m.Get(ctx, scope)
}

func (m *mockPoolRepo) Close(ctx context.Context, scope domain.PoolScope, distributedAmount, totalPoints int64, isTest bool) error {
	if m.CloseFunc != nil {
		return m.CloseFunc(ctx, scope, distributedAmount, totalPoints, isTest)
	}
	return nil
}

type mockUnlockRepo struct {
	CreateQuestionUnlockFunc func(ctx context.Context, u *domain.QuestionUnlock) error
	CreateAnswerUnlockFunc   func(ctx context.Context, u *domain.AnswerUnlock) error
	HasQuestionUnlockFunc    func(ctx context.Context, questionID, userID uuid.UUID) (bool, error)
	HasAnswerUnlockFunc      func(ctx context.Context, answerID, userID uuid.UUID) (bool, error)
}

func (m *mockUnlockRepo) CreateQuestionUnlock(ctx context.Context, u *domain.QuestionUnlock) error {
	if m.CreateQuestionUnlockFunc != nil {
		return m.CreateQuestionUnlockFunc(ctx, u)
	}
	return nil
}

func (m *mockUnlockRepo) CreateAnswerUnlock(ctx context.Context, u *domain.AnswerUnlock) error {
	if m.CreateAnswerUnlockFunc != nil {
		return m.CreateAnswerUnlockFunc(ctx, u)
	}
	return nil
}

func (m *mockUnlockRepo) HasQuestionUnlock(ctx context.Context, questionID, userID uuid.UUID) (bool, error) {
	if m.HasQuestionUnlockFunc != nil {
		return m.HasQuestionUnlockFunc(ctx, questionID, userID)
	}
	return false, nil
}

func (m *mockUnlockRepo) HasAnswerUnlock(ctx context.Context, answerID, userID uuid.UUID) (bool, error) {
	if m.HasAnswerUnlockFunc != nil {
		return m.HasAnswerUnlockFunc(ctx, answerID, userID)
	}
	return false, nil
}

type mockRewardRepo struct {
	CreateFunc      func(ctx context.Context, rec *domain.RewardRecord) error
	CreateBatchFunc func(ctx context.Context, recs []*domain.RewardRecord) error
	ListByUserFunc  func(ctx context.Context, userID uuid.UUID) ([]*domain.RewardRecord, error)
}

func (m *mockRewardRepo) Create(ctx context.Context, rec *domain.RewardRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, rec)
	}
	return nil
}

func (m *mockRewardRepo) CreateBatch(ctx context.Context, recs []*domain.RewardRecord) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, recs)
	}
	return nil
}

func (m *mockRewardRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.RewardRecord, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

type mockQuestionRepo struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Question, error)
}

func (m *mockQuestionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

type mockAnswerRepo struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Answer, error)
}

func (m *mockAnswerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Answer, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

type mockTxManager struct{}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ===========================================================================
// Helpers
// ===========================================================================

type testDeps struct {
	contributions *mockContributionRepo
	pools         *mockPoolRepo
	unlocks       *mockUnlockRepo
	rewards       *mockRewardRepo
	questions     *mockQuestionRepo
	answers       *mockAnswerRepo
}

func defaultDeps() *testDeps {
	return &testDeps{
		contributions: &mockContributionRepo{},
		pools:         &mockPoolRepo{},
		unlocks:       &mockUnlockRepo{},
		rewards:       &mockRewardRepo{},
		questions:     &mockQuestionRepo{},
		answers:       &mockAnswerRepo{},
	}
}

func testRewardsConfig() config.RewardsConfig {
	return config.RewardsConfig{
		UnlockPrice:      100,
		PoolPercentage:   0.6,
		AnswerPercentage: 0.6,
	}
}

func newTestService(d *testDeps) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, d.contributions, d.pools, d.unlocks, d.rewards,
		d.questions, d.answers, &mockTxManager{}, testRewardsConfig())
}

func authedCtx(userID uuid.UUID) context.Context {
	return ctxutil.WithUserID(context.Background(), userID)
}

func openPool(scope domain.PoolScope, amount int64) *domain.RewardPool {
	return &domain.RewardPool{Scope: scope, PoolAmount: amount}
}

func contribution(period domain.Period, userID uuid.UUID, points int64) *domain.ContributionRecord {
	return &domain.ContributionRecord{Period: period, UserID: userID, TotalPoints: points}
}

// ===========================================================================
// Pool accumulation
// ===========================================================================

func TestAddFunds_FloorsPoolShare(t *testing.T) {
	deps := defaultDeps()
	var added int64
	deps.pools.AddFundsFunc = func(ctx context.Context, scope domain.PoolScope, amount int64) error {
		added = amount
		return nil
	}

	svc := newTestService(deps)
	scope := domain.PeriodScope("2026-08")

	net, err := svc.AddFunds(context.Background(), scope, 105)

	require.NoError(t, err)
	assert.Equal(t, int64(63), net) // floor(105 * 0.6)
	assert.Equal(t, int64(63), added)
}

func TestAddFunds_ClosedPool_Conflict(t *testing.T) {
	deps := defaultDeps()
	deps.pools.AddFundsFunc = func(ctx context.Context, scope domain.PoolScope, amount int64) error {
		return domain.ErrConflict
	}

	svc := newTestService(deps)
	_, err := svc.AddFunds(context.Background(), domain.PeriodScope("2026-07"), 100)

	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ===========================================================================
// Distribution
// ===========================================================================

func TestDistribute_NoPool_SoftOutcome(t *testing.T) {
	svc := newTestService(defaultDeps()) // Get defaults to ErrNotFound

	result, err := svc.Distribute(context.Background(), domain.PeriodScope("2026-08"))

	require.NoError(t, err)
	assert.Equal(t, OutcomeNoPool, result.Outcome)
}

func TestDistribute_AlreadyDistributed_SoftOutcome(t *testing.T) {
	deps := defaultDeps()
	deps.pools.GetFunc = func(ctx context.Context, scope domain.PoolScope) (*domain.RewardPool, error) {
		return &domain.RewardPool{Scope: scope, PoolAmount: 500, Distributed: true}, nil
	}
	batchCalled := false
	deps.rewards.CreateBatchFunc = func(ctx context.Context, recs []*domain.RewardRecord) error {
		batchCalled = true
		return nil
	}

	svc := newTestService(deps)
	result, err := svc.Distribute(context.Background(), domain.PeriodScope("2026-08"))

	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyDistributed, result.Outcome)
	assert.False(t, batchCalled, "a distributed pool must never pay out again")
}

func TestDistribute_ZeroPoints_ClosesWithZero(t *testing.T) {
	scope := domain.PeriodScope("2026-08")
	deps := defaultDeps()
	deps.pools.GetFunc = func(ctx context.Context, s domain.PoolScope) (*domain.RewardPool, error) {
		return openPool(s, 500), nil
	}
	var closedAmount int64 = -1
	deps.pools.CloseFunc = func(ctx context.Context, s domain.PoolScope, distributedAmount, totalPoints int64, isTest bool) error {
		closedAmount = distributedAmount
		return nil
	}

	svc := newTestService(deps)
	result, err := svc.Distribute(context.Background(), scope)

	require.NoError(t, err)
	assert.Equal(t, OutcomeNothingToShare, result.Outcome)
	assert.Equal(t, int64(0), closedAmount)
}

// Scenario: 600 in the pool, contributors at 75 and 25 points. Shares are
// exactly proportional, nothing is left over.
func TestDistribute_ProportionalSplit(t *testing.T) {
	period := domain.Period("2026-08")
	scope := domain.PeriodScope(period)
	alice, bob := uuid.New(), uuid.New()

	deps := defaultDeps()
	deps.pools.GetFunc = func(ctx context.Context, s domain.PoolScope) (*domain.RewardPool, error) {
		return openPool(s, 600), nil
	}
	deps.contributions.ListByPeriodFunc = func(ctx context.Context, p domain.Period) ([]*domain.ContributionRecord, error) {
		return []*domain.ContributionRecord{
			contribution(p, alice, 75),
			contribution(p, bob, 25),
		}, nil
	}
	var batch []*domain.RewardRecord
	deps.rewards.CreateBatchFunc = func(ctx context.Context, recs []*domain.RewardRecord) error {
		batch = recs
		return nil
	}

	svc := newTestService(deps)
	result, err := svc.Distribute(context.Background(), scope)

	require.NoError(t, err)
	assert.Equal(t, OutcomeDistributed, result.Outcome)
	assert.Equal(t, int64(600), result.DistributedAmount)
	assert.Equal(t, int64(0), result.Remainder)

	require.Len(t, batch, 2)
	byUser := map[uuid.UUID]int64{}
	for _, rec := range batch {
		byUser[rec.UserID] = rec.Amount
	}
	assert.Equal(t, int64(450), byUser[alice])
	assert.Equal(t, int64(150), byUser[bob])
}

// Scenario: 100 in the pool, three equal contributors. Each gets 33, the
// remaining 1 stays with the platform, and the pool record still settles
// the full 100.
func TestDistribute_RemainderRetained(t *testing.T) {
	period := domain.Period("2026-08")
	scope := domain.PeriodScope(period)

	deps := defaultDeps()
	deps.pools.GetFunc = func(ctx context.Context, s domain.PoolScope) (*domain.RewardPool, error) {
		return openPool(s, 100), nil
	}
	deps.contributions.ListByPeriodFunc = func(ctx context.Context, p domain.Period) ([]*domain.ContributionRecord, error) {
		return []*domain.ContributionRecord{
			contribution(p, uuid.New(), 10),
			contribution(p, uuid.New(), 10),
			contribution(p, uuid.New(), 10),
		}, nil
	}
	var batch []*domain.RewardRecord
	deps.rewards.CreateBatchFunc = func(ctx context.Context, recs []*domain.RewardRecord) error {
		batch = recs
		return nil
	}
	var closedAmount int64
	deps.pools.CloseFunc = func(ctx context.Context, s domain.PoolScope, distributedAmount, totalPoints int64, isTest bool) error {
		closedAmount = distributedAmount
		return nil
	}

	svc := newTestService(deps)
	result, err := svc.Distribute(context.Background(), scope)

	require.NoError(t, err)
	assert.Equal(t, int64(99), result.DistributedAmount)
	assert.Equal(t, int64(1), result.Remainder)
	assert.Equal(t, int64(100), closedAmount, "pool closes with the full pool amount, not the share sum")

	var total int64
	for _, rec := range batch {
		assert.Equal(t, int64(33), rec.Amount)
		total += rec.Amount
	}
	assert.LessOrEqual(t, total, int64(100), "conservation: payouts never exceed the pool")
}

// Scenario: concurrent distribution race. The loser's close hits the
// distributed = false guard and must report a soft outcome, not an error.
func TestDistribute_RaceLoser_AlreadyDistributed(t *testing.T) {
	period := domain.Period("2026-08")
	scope := domain.PeriodScope(period)

	deps := defaultDeps()
	deps.pools.GetFunc = func(ctx context.Context, s domain.PoolScope) (*domain.RewardPool, error) {
		return openPool(s, 100), nil
	}
	deps.contributions.ListByPeriodFunc = func(ctx context.Context, p domain.Period) ([]*domain.ContributionRecord, error) {
		return []*domain.ContributionRecord{contribution(p, uuid.New(), 5)}, nil
	}
	deps.pools.CloseFunc = func(ctx context.Context, s domain.PoolScope, distributedAmount, totalPoints int64, isTest bool) error {
		return fmt.Errorf("reward pool %s already distributed: %w", s, domain.ErrConflict)
	}

	svc := newTestService(deps)
	result, err := svc.Distribute(context.Background(), scope)

	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyDistributed, result.Outcome)
}

func TestDistribute_QuestionPool_AllToBestAnswerer(t *testing.T) {
	questionID := uuid.New()
	bestAnswerID := uuid.New()
	answerer := uuid.New()
	scope := domain.QuestionScope(questionID)

	deps := defaultDeps()
	deps.pools.GetFunc = func(ctx context.Context, s domain.PoolScope) (*domain.RewardPool, error) {
		return openPool(s, 240), nil
	}
	deps.questions.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
		return &domain.Question{ID: questionID, BestAnswerID: &bestAnswerID}, nil
	}
	deps.answers.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Answer, error) {
		return &domain.Answer{ID: bestAnswerID, QuestionID: questionID, AuthorID: answerer}, nil
	}
	var record *domain.RewardRecord
	deps.rewards.CreateFunc = func(ctx context.Context, rec *domain.RewardRecord) error {
		record = rec
		return nil
	}

	svc := newTestService(deps)
	result, err := svc.Distribute(context.Background(), scope)

	require.NoError(t, err)
	assert.Equal(t, OutcomeDistributed, result.Outcome)
	require.NotNil(t, record)
	assert.Equal(t, answerer, record.UserID)
	assert.Equal(t, int64(240), record.Amount)
	assert.True(t, record.IsBestAnswerer)
}

func TestDistribute_QuestionPool_NoBestAnswerYet_StaysOpen(t *testing.T) {
	questionID := uuid.New()
	scope := domain.QuestionScope(questionID)

	deps := defaultDeps()
	deps.pools.GetFunc = func(ctx context.Context, s domain.PoolScope) (*domain.RewardPool, error) {
		return openPool(s, 100), nil
	}
	deps.questions.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
		return &domain.Question{ID: questionID}, nil
	}
	closeCalled := false
	deps.pools.CloseFunc = func(ctx context.Context, s domain.PoolScope, distributedAmount, totalPoints int64, isTest bool) error {
		closeCalled = true
		return nil
	}

	svc := newTestService(deps)
	result, err := svc.Distribute(context.Background(), scope)

	require.NoError(t, err)
	assert.Equal(t, OutcomeNothingToShare, result.Outcome)
	assert.False(t, closeCalled, "pool without a best answer must stay open")
}

// ===========================================================================
// Unlocks
// ===========================================================================

func TestUnlockQuestion_FundsPeriodPool(t *testing.T) {
	questionID := uuid.New()
	deps := defaultDeps()
	deps.questions.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
		return &domain.Question{ID: questionID}, nil
	}
	var fundedScope domain.PoolScope
	var fundedAmount int64
	deps.pools.AddFundsFunc = func(ctx context.Context, scope domain.PoolScope, amount int64) error {
		fundedScope = scope
		fundedAmount = amount
		return nil
	}

	svc := newTestService(deps)
	result, err := svc.UnlockQuestion(authedCtx(uuid.New()), questionID)

	require.NoError(t, err)
	assert.Equal(t, int64(100), result.Amount)
	assert.Equal(t, int64(60), result.PoolAmount) // floor(100 * 0.6)
	assert.Equal(t, int64(60), fundedAmount)
	assert.Equal(t, domain.PoolScopePeriod, fundedScope.Type)
}

// Scenario: the same user unlocks the same question twice. The second
// attempt conflicts and the pool grows only once.
func TestUnlockQuestion_Duplicate_NoDoubleAccrual(t *testing.T) {
	questionID := uuid.New()
	userID := uuid.New()

	deps := defaultDeps()
	deps.questions.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
		return &domain.Question{ID: questionID}, nil
	}
	seen := map[string]bool{}
	deps.unlocks.CreateQuestionUnlockFunc = func(ctx context.Context, u *domain.QuestionUnlock) error {
		key := u.QuestionID.String() + u.UnlockedBy.String()
		if seen[key] {
			return domain.ErrAlreadyExists
		}
		seen[key] = true
		return nil
	}
	var poolTotal int64
	deps.pools.AddFundsFunc = func(ctx context.Context, scope domain.PoolScope, amount int64) error {
		poolTotal += amount
		return nil
	}

	svc := newTestService(deps)

	_, err := svc.UnlockQuestion(authedCtx(userID), questionID)
	require.NoError(t, err)

	_, err = svc.UnlockQuestion(authedCtx(userID), questionID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	assert.Equal(t, int64(60), poolTotal, "pool must accrue exactly once")
}

// Scenario: the unlock already exists. The pre-check conflicts before any
// write is attempted.
func TestUnlockQuestion_AlreadyUnlocked_NoWrite(t *testing.T) {
	questionID := uuid.New()

	deps := defaultDeps()
	deps.questions.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
		return &domain.Question{ID: questionID}, nil
	}
	deps.unlocks.HasQuestionUnlockFunc = func(ctx context.Context, qID, uID uuid.UUID) (bool, error) {
		return true, nil
	}
	created := false
	deps.unlocks.CreateQuestionUnlockFunc = func(ctx context.Context, u *domain.QuestionUnlock) error {
		created = true
		return nil
	}
	funded := false
	deps.pools.AddFundsFunc = func(ctx context.Context, scope domain.PoolScope, amount int64) error {
		funded = true
		return nil
	}

	svc := newTestService(deps)
	_, err := svc.UnlockQuestion(authedCtx(uuid.New()), questionID)

	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	assert.False(t, created)
	assert.False(t, funded)
}

func TestUnlockAnswer_AlreadyUnlocked_NoReward(t *testing.T) {
	answerID := uuid.New()
	userID := uuid.New()

	deps := defaultDeps()
	deps.answers.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Answer, error) {
		return &domain.Answer{ID: answerID, QuestionID: uuid.New(), AuthorID: uuid.New()}, nil
	}
	deps.unlocks.HasAnswerUnlockFunc = func(ctx context.Context, aID, uID uuid.UUID) (bool, error) {
		return true, nil
	}
	rewarded := false
	deps.rewards.CreateFunc = func(ctx context.Context, rec *domain.RewardRecord) error {
		rewarded = true
		return nil
	}

	svc := newTestService(deps)
	_, err := svc.UnlockAnswer(authedCtx(userID), answerID)

	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	assert.False(t, rewarded)
}

func TestUnlockAnswer_DirectReward(t *testing.T) {
	answerID := uuid.New()
	answerer := uuid.New()

	deps := defaultDeps()
	deps.answers.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Answer, error) {
		return &domain.Answer{ID: answerID, QuestionID: uuid.New(), AuthorID: answerer}, nil
	}
	var record *domain.RewardRecord
	deps.rewards.CreateFunc = func(ctx context.Context, rec *domain.RewardRecord) error {
		record = rec
		return nil
	}

	svc := newTestService(deps)
	result, err := svc.UnlockAnswer(authedCtx(uuid.New()), answerID)

	require.NoError(t, err)
	assert.Equal(t, int64(60), result.RewardAmount)
	require.NotNil(t, record)
	assert.Equal(t, answerer, record.UserID)
	assert.Equal(t, domain.PoolScopeAnswer, record.Scope.Type)
	assert.Equal(t, domain.RewardStatusPending, record.Status)
}

func TestUnlockAnswer_OwnAnswer_Validation(t *testing.T) {
	answerID := uuid.New()
	userID := uuid.New()

	deps := defaultDeps()
	deps.answers.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Answer, error) {
		return &domain.Answer{ID: answerID, AuthorID: userID}, nil
	}

	svc := newTestService(deps)
	_, err := svc.UnlockAnswer(authedCtx(userID), answerID)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ===========================================================================
// Monthly trigger
// ===========================================================================

func TestDistributeMonthly_InvalidPeriod(t *testing.T) {
	svc := newTestService(defaultDeps())

	_, err := svc.DistributeMonthly(context.Background(), "2026/08")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDistributeMonthly_ExplicitPeriod(t *testing.T) {
	deps := defaultDeps()
	var requested domain.PoolScope
	deps.pools.GetFunc = func(ctx context.Context, scope domain.PoolScope) (*domain.RewardPool, error) {
		requested = scope
		return nil, domain.ErrNotFound
	}

	svc := newTestService(deps)
	result, err := svc.DistributeMonthly(context.Background(), "2026-07")

	require.NoError(t, err)
	assert.Equal(t, OutcomeNoPool, result.Outcome)
	assert.Equal(t, domain.PeriodScope("2026-07"), requested)
}

// ===========================================================================
// Ledger arithmetic (via contribution mocks)
// ===========================================================================

func TestRecordAnswer_Delegates(t *testing.T) {
	deps := defaultDeps()
	var gotPeriod domain.Period
	var gotAnswer uuid.UUID
	deps.contributions.RecordAnswerFunc = func(ctx context.Context, period domain.Period, userID, answerID uuid.UUID) error {
		gotPeriod = period
		gotAnswer = answerID
		return nil
	}

	svc := newTestService(deps)
	answerID := uuid.New()
	err := svc.RecordAnswer(context.Background(), "2026-08", uuid.New(), answerID)

	require.NoError(t, err)
	assert.Equal(t, domain.Period("2026-08"), gotPeriod)
	assert.Equal(t, answerID, gotAnswer)
}
