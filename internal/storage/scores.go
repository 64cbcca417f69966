package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxNicknameLength bounds nicknames, in runes.
const MaxNicknameLength = 20

// timeLayout sorts lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000Z"

// ErrEmptyNickname is returned when a score has no nickname.
var ErrEmptyNickname = errors.New("storage: nickname is required")

// Score is a finished solve on the leaderboard.
type Score struct {
	ScoreID   string
	Nickname  string
	CubeSize  int
	Moves     int
	Time      time.Duration
	Scramble  string
	MoveLog   string
	CreatedAt time.Time
}

// ScoreRepository stores and ranks scores.
type ScoreRepository struct {
	db  *DB
	now func() time.Time
}

// NewScoreRepository creates a new score repository.
func NewScoreRepository(db *DB) *ScoreRepository {
	return &ScoreRepository{db: db, now: time.Now}
}

// Create stores a score and returns its ID and its rank among scores of the
// same cube size.
func (r *ScoreRepository) Create(s Score) (string, int, error) {
	nickname := strings.TrimSpace(s.Nickname)
	if nickname == "" {
		return "", 0, ErrEmptyNickname
	}
	if utf8.RuneCountInString(nickname) > MaxNicknameLength {
		nickname = string([]rune(nickname)[:MaxNicknameLength])
	}

	id := uuid.New().String()
	createdAt := r.now().UTC()

	var scramblePtr, moveLogPtr *string
	if s.Scramble != "" {
		scramblePtr = &s.Scramble
	}
	if s.MoveLog != "" {
		moveLogPtr = &s.MoveLog
	}

	var rank int
	err := r.db.Transaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO scores (score_id, nickname, cube_size, moves, time_ms, scramble_text, move_log, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, id, nickname, s.CubeSize, s.Moves, s.Time.Milliseconds(), scramblePtr, moveLogPtr, createdAt.Format(timeLayout))
		if err != nil {
			return fmt.Errorf("failed to create score: %w", err)
		}

		err = tx.QueryRow(`
			SELECT COUNT(*) + 1 FROM scores
			WHERE cube_size = ? AND (moves < ? OR (moves = ? AND time_ms < ?))
		`, s.CubeSize, s.Moves, s.Moves, s.Time.Milliseconds()).Scan(&rank)
		if err != nil {
			return fmt.Errorf("failed to rank score: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", 0, err
	}
	return id, rank, nil
}

// Top returns the best scores for a cube size: fewest moves first, then
// fastest, then earliest.
func (r *ScoreRepository) Top(size, limit int) ([]Score, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.Query(`
		SELECT score_id, nickname, cube_size, moves, time_ms, scramble_text, move_log, created_at
		FROM scores
		WHERE cube_size = ?
		ORDER BY moves ASC, time_ms ASC, created_at ASC
		LIMIT ?
	`, size, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}
	defer rows.Close()

	var scores []Score
	for rows.Next() {
		s, err := scanScore(rows)
		if err != nil {
			return nil, err
		}
		scores = append(scores, *s)
	}
	return scores, rows.Err()
}

// Get returns a score by ID.
func (r *ScoreRepository) Get(scoreID string) (*Score, error) {
	row := r.db.QueryRow(`
		SELECT score_id, nickname, cube_size, moves, time_ms, scramble_text, move_log, created_at
		FROM scores WHERE score_id = ?
	`, scoreID)

	s, err := scanScore(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return s, err
}

// Count returns the number of scores for a cube size.
func (r *ScoreRepository) Count(size int) (int, error) {
	var n int
	err := r.db.QueryRow("SELECT COUNT(*) FROM scores WHERE cube_size = ?", size).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count scores: %w", err)
	}
	return n, nil
}

func scanScore(row interface{ Scan(...any) error }) (*Score, error) {
	var (
		s                 Score
		timeMs            int64
		scramble, moveLog sql.NullString
		createdAt         string
	)
	err := row.Scan(&s.ScoreID, &s.Nickname, &s.CubeSize, &s.Moves, &timeMs, &scramble, &moveLog, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan score: %w", err)
	}

	s.Time = time.Duration(timeMs) * time.Millisecond
	s.Scramble = scramble.String
	s.MoveLog = moveLog.String
	if t, err := time.Parse(timeLayout, createdAt); err == nil {
		s.CreatedAt = t
	}
	return &s, nil
}
