package storage

import (
	"fmt"
	"time"

	"github.com/umputun/tg-guard/app/storage/engine"
	"github.com/umputun/tg-guard/lib/verdict"
)

func (s *StorageTestSuite) TestBans_NewBans() {
	_, err := NewBans(s.ctx, nil)
	s.Require().Error(err)

	s.forEachDB(func(_ string, db *engine.SQL) {
		_, err := NewBans(s.ctx, db)
		s.Require().NoError(err)
		_, err = NewBans(s.ctx, db)
		s.Require().NoError(err)
	})
}

func (s *StorageTestSuite) TestBans_AddAndRead() {
	s.forEachDB(func(_ string, db *engine.SQL) {
		bans, err := NewBans(s.ctx, db)
		s.Require().NoError(err)

		ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
		entries := []BanEntry{
			{Time: ts, ChatID: -1001, ChatTitle: "chat", UserID: 1, UserName: "spammer1", DisplayName: "John",
				Rule: verdict.RuleGreek, Trigger: "gοοd", Reason: "greek", Text: "gοοd stuff"},
			{Time: ts.Add(time.Minute), ChatID: -1001, ChatTitle: "chat", UserID: 2,
				Rule: verdict.RuleKeyword, Trigger: "crypto now", Reason: "keyword", Text: "buy crypto now"},
			{Time: ts.Add(2 * time.Minute), ChatID: -1002, ChatTitle: "other", UserID: 3,
				Rule: verdict.RuleKeyword, Trigger: "free money", Reason: "keyword", Text: "free money"},
		}
		for _, e := range entries {
			s.Require().NoError(bans.Add(s.ctx, e))
		}

		res, err := bans.Read(s.ctx, 10)
		s.Require().NoError(err)
		s.Require().Len(res, 3)
		s.Equal(int64(3), res[0].UserID, "newest first")
		s.Equal(int64(1), res[2].UserID)
		s.True(ts.Equal(res[2].Time))
		s.Equal("spammer1", res[2].UserName)
		s.Equal("John", res[2].DisplayName)
		s.Equal(verdict.RuleGreek, res[2].Rule)
		s.Equal("gοοd", res[2].Trigger)
		s.Equal("gοοd stuff", res[2].Text)
		s.Equal(int64(-1001), res[2].ChatID)
		s.NotZero(res[2].ID)

		res, err = bans.Read(s.ctx, 2)
		s.Require().NoError(err)
		s.Len(res, 2)

		res, err = bans.Read(s.ctx, 0)
		s.Require().NoError(err)
		s.Empty(res)
	})
}

func (s *StorageTestSuite) TestBans_ZeroTime() {
	s.forEachDB(func(_ string, db *engine.SQL) {
		bans, err := NewBans(s.ctx, db)
		s.Require().NoError(err)
		s.Require().NoError(bans.Add(s.ctx, BanEntry{UserID: 10, Rule: verdict.RuleMixed}))
		res, err := bans.Read(s.ctx, 1)
		s.Require().NoError(err)
		s.Require().Len(res, 1)
		s.WithinDuration(time.Now(), res[0].Time, time.Minute)
	})
}

func (s *StorageTestSuite) TestBans_Stats() {
	s.forEachDB(func(_ string, db *engine.SQL) {
		bans, err := NewBans(s.ctx, db)
		s.Require().NoError(err)

		stats, err := bans.Stats(s.ctx)
		s.Require().NoError(err)
		s.Empty(stats)

		rules := []verdict.Rule{verdict.RuleGreek, verdict.RuleMixed, verdict.RuleMixed, verdict.RuleKeyword,
			verdict.RuleKeyword, verdict.RuleKeyword}
		for i, r := range rules {
			s.Require().NoError(bans.Add(s.ctx, BanEntry{UserID: int64(i + 1), Rule: r, Trigger: fmt.Sprintf("t%d", i)}))
		}

		stats, err = bans.Stats(s.ctx)
		s.Require().NoError(err)
		s.Equal(map[verdict.Rule]int{verdict.RuleGreek: 1, verdict.RuleMixed: 2, verdict.RuleKeyword: 3}, stats)
	})
}
