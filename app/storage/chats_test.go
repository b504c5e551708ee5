package storage

import (
	"time"

	"github.com/umputun/tg-guard/app/storage/engine"
)

func (s *StorageTestSuite) TestChats_NewChats() {
	_, err := NewChats(s.ctx, nil)
	s.Require().Error(err)
	s.Contains(err.Error(), "db connection is nil")

	s.forEachDB(func(_ string, db *engine.SQL) {
		_, err := NewChats(s.ctx, db)
		s.Require().NoError(err)
		// second init on the existing table is fine
		_, err = NewChats(s.ctx, db)
		s.Require().NoError(err)
	})
}

func (s *StorageTestSuite) TestChats_RegisterAndGet() {
	s.forEachDB(func(_ string, db *engine.SQL) {
		chats, err := NewChats(s.ctx, db)
		s.Require().NoError(err)

		err = chats.Register(s.ctx, ChatInfo{ID: -100123, Title: "Go Users", UserName: "gousers", Type: "supergroup"})
		s.Require().NoError(err)

		chat, err := chats.Get(s.ctx, -100123)
		s.Require().NoError(err)
		s.Equal(int64(-100123), chat.ID)
		s.Equal("Go Users", chat.Title)
		s.Equal("gousers", chat.UserName)
		s.Equal("supergroup", chat.Type)
		s.True(chat.Active)
		s.WithinDuration(time.Now(), chat.AddedAt, time.Minute)
		s.WithinDuration(time.Now(), chat.UpdatedAt, time.Minute)

		_, err = chats.Get(s.ctx, 42)
		s.Require().Error(err)
		s.Contains(err.Error(), "chat 42 not found")

		err = chats.Register(s.ctx, ChatInfo{Title: "no id"})
		s.Require().Error(err)
	})
}

func (s *StorageTestSuite) TestChats_ReRegisterUpdates() {
	s.forEachDB(func(_ string, db *engine.SQL) {
		chats, err := NewChats(s.ctx, db)
		s.Require().NoError(err)

		s.Require().NoError(chats.Register(s.ctx, ChatInfo{ID: 1, Title: "old title", Type: "group"}))
		first, err := chats.Get(s.ctx, 1)
		s.Require().NoError(err)

		time.Sleep(10 * time.Millisecond)
		s.Require().NoError(chats.Register(s.ctx, ChatInfo{ID: 1, Title: "new title", Type: "supergroup"}))
		second, err := chats.Get(s.ctx, 1)
		s.Require().NoError(err)

		s.Equal("new title", second.Title)
		s.Equal("supergroup", second.Type)
		s.True(first.AddedAt.Equal(second.AddedAt), "added_at kept on update")
		s.True(second.UpdatedAt.After(first.UpdatedAt))

		list, err := chats.List(s.ctx, false)
		s.Require().NoError(err)
		s.Len(list, 1)
	})
}

func (s *StorageTestSuite) TestChats_DeactivateAndList() {
	s.forEachDB(func(_ string, db *engine.SQL) {
		chats, err := NewChats(s.ctx, db)
		s.Require().NoError(err)

		for _, c := range []ChatInfo{{ID: 1, Title: "one"}, {ID: 2, Title: "two"}, {ID: 3, Title: "three"}} {
			s.Require().NoError(chats.Register(s.ctx, c))
		}
		s.Require().NoError(chats.Deactivate(s.ctx, 2))

		s.Require().NoError(chats.Deactivate(s.ctx, 100), "unknown chat ignored")
		_, err = chats.Get(s.ctx, 100)
		s.Require().Error(err, "unknown chat not created")

		all, err := chats.List(s.ctx, false)
		s.Require().NoError(err)
		s.Len(all, 3)

		active, err := chats.List(s.ctx, true)
		s.Require().NoError(err)
		s.Len(active, 2)
		for _, c := range active {
			s.True(c.Active)
			s.NotEqual(int64(2), c.ID)
		}

		ids, err := chats.ActiveIDs(s.ctx)
		s.Require().NoError(err)
		s.ElementsMatch([]int64{1, 3}, ids)

		// re-register brings the chat back
		s.Require().NoError(chats.Register(s.ctx, ChatInfo{ID: 2, Title: "two again"}))
		ids, err = chats.ActiveIDs(s.ctx)
		s.Require().NoError(err)
		s.ElementsMatch([]int64{1, 2, 3}, ids)
	})
}

func (s *StorageTestSuite) TestChats_Empty() {
	s.forEachDB(func(_ string, db *engine.SQL) {
		chats, err := NewChats(s.ctx, db)
		s.Require().NoError(err)
		list, err := chats.List(s.ctx, true)
		s.Require().NoError(err)
		s.Empty(list)
		s.NotNil(list)
	})
}

func (s *StorageTestSuite) TestChats_ScopedByGID() {
	chats1, err := NewChats(s.ctx, s.dbs["sqlite"])
	s.Require().NoError(err)

	db2, err := engine.NewSqlite(s.sqliteFile, "gr2")
	s.Require().NoError(err)
	defer db2.Close()
	chats2, err := NewChats(s.ctx, db2)
	s.Require().NoError(err)

	s.Require().NoError(chats1.Register(s.ctx, ChatInfo{ID: 1, Title: "first instance"}))
	s.Require().NoError(chats2.Register(s.ctx, ChatInfo{ID: 1, Title: "second instance"}))
	s.Require().NoError(chats2.Register(s.ctx, ChatInfo{ID: 2, Title: "second only"}))

	list1, err := chats1.List(s.ctx, false)
	s.Require().NoError(err)
	s.Require().Len(list1, 1)
	s.Equal("first instance", list1[0].Title)

	list2, err := chats2.List(s.ctx, false)
	s.Require().NoError(err)
	s.Len(list2, 2)

	s.Require().NoError(chats1.Deactivate(s.ctx, 2), "other instance's chat is not visible")
	chat, err := chats2.Get(s.ctx, 2)
	s.Require().NoError(err)
	s.True(chat.Active, "other instance's chat left active")
}
