// Package memory 以記憶體實作 repository 介面，行為對齊 gorm 版本（唯一約束與外鍵動作），供測試使用。
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"story_web/internal/models"
	"story_web/internal/repository"
)

// Store 所有資料放在同一把鎖之下
type Store struct {
	mu sync.Mutex
	id uint

	users         map[uint]models.User
	categories    map[uint]models.Category
	stories       map[uint]models.Story
	storyLikes    map[[2]uint]bool // {storyID, userID}
	saved         map[[2]uint]time.Time
	characters    map[uint]models.Character
	episodes      map[uint]models.Episode
	messages      map[uint]models.Message
	comments      map[uint]models.Comment
	commentLikes  map[[2]uint]bool // {commentID, userID}
	notifications map[uint]models.Notification
	views         map[uint]map[string]bool
}

func NewStore() *Store {
	return &Store{
		users:         map[uint]models.User{},
		categories:    map[uint]models.Category{},
		stories:       map[uint]models.Story{},
		storyLikes:    map[[2]uint]bool{},
		saved:         map[[2]uint]time.Time{},
		characters:    map[uint]models.Character{},
		episodes:      map[uint]models.Episode{},
		messages:      map[uint]models.Message{},
		comments:      map[uint]models.Comment{},
		commentLikes:  map[[2]uint]bool{},
		notifications: map[uint]models.Notification{},
		views:         map[uint]map[string]bool{},
	}
}

func (db *Store) nextID() uint {
	db.id++
	return db.id
}

// Repositories 回傳共用同一個 Store 的所有 repository
func (db *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		User:         memUsers{db},
		Category:     memCategories{db},
		Story:        memStories{db},
		Character:    memCharacters{db},
		Episode:      memEpisodes{db},
		Message:      memMessages{db},
		Comment:      memComments{db},
		Notification: memNotifications{db},
		View:         memViews{db},
	}
}

func idSet(ids []uint) map[uint]bool {
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func pageOf[T any](items []T, p repository.Page) []T {
	p = p.Normalize()
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// users

type memUsers struct{ db *Store }

func (r memUsers) Create(_ context.Context, u *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.users {
		if existing.Username == u.Username {
			return repository.ErrDuplicate
		}
	}
	u.ID = r.db.nextID()
	r.db.users[u.ID] = *u
	return nil
}

func (r memUsers) FindByID(_ context.Context, id uint) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r memUsers) FindByUsername(_ context.Context, username string) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memUsers) FindByIDs(_ context.Context, ids []uint) (map[uint]models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := map[uint]models.User{}
	for _, id := range ids {
		if u, ok := r.db.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

// categories

type memCategories struct{ db *Store }

func (r memCategories) List(_ context.Context) ([]models.Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]models.Category, 0, len(r.db.categories))
	for _, c := range r.db.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memCategories) FindByID(_ context.Context, id uint) (*models.Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r memCategories) FindByIDs(_ context.Context, ids []uint) (map[uint]models.Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := map[uint]models.Category{}
	for _, id := range ids {
		if c, ok := r.db.categories[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

func (r memCategories) EnsureNames(_ context.Context, names []string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
next:
	for _, name := range names {
		for _, c := range r.db.categories {
			if c.Name == name {
				continue next
			}
		}
		id := r.db.nextID()
		r.db.categories[id] = models.Category{ID: id, Name: name}
	}
	return nil
}

// stories

type memStories struct{ db *Store }

func (r memStories) Create(_ context.Context, s *models.Story) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s.ID = r.db.nextID()
	s.CreatedAt = time.Now().Add(time.Duration(s.ID) * time.Millisecond)
	s.UpdatedAt = s.CreatedAt
	r.db.stories[s.ID] = *s
	return nil
}

func (r memStories) FindByID(_ context.Context, id uint) (*models.Story, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.stories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r memStories) Update(_ context.Context, s *models.Story) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.stories[s.ID]; !ok {
		return repository.ErrNotFound
	}
	r.db.stories[s.ID] = *s
	return nil
}

// Delete 模擬 ON DELETE CASCADE
func (r memStories) Delete(_ context.Context, id uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.stories, id)
	for eid, e := range r.db.episodes {
		if e.StoryID == id {
			delete(r.db.episodes, eid)
			for mid, m := range r.db.messages {
				if m.EpisodeID == eid {
					delete(r.db.messages, mid)
				}
			}
		}
	}
	for cid, c := range r.db.characters {
		if c.StoryID == id {
			delete(r.db.characters, cid)
		}
	}
	for cid, c := range r.db.comments {
		if c.StoryID == id {
			delete(r.db.comments, cid)
		}
	}
	for k := range r.db.storyLikes {
		if k[0] == id {
			delete(r.db.storyLikes, k)
		}
	}
	for k := range r.db.saved {
		if k[1] == id {
			delete(r.db.saved, k)
		}
	}
	return nil
}

func (r memStories) sorted(filter func(models.Story) bool) []models.Story {
	out := []models.Story{}
	for _, s := range r.db.stories {
		if filter(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r memStories) FindByIDs(_ context.Context, ids []uint) (map[uint]models.Story, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := map[uint]models.Story{}
	for _, id := range ids {
		if s, ok := r.db.stories[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

func (r memStories) published(search string) []models.Story {
	search = strings.ToLower(strings.TrimSpace(search))
	return r.sorted(func(s models.Story) bool {
		return s.Published && strings.Contains(strings.ToLower(s.Title), search)
	})
}

func (r memStories) PublishedIDs(_ context.Context, search string) ([]uint, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	ids := []uint{}
	for _, s := range r.published(search) {
		ids = append(ids, s.ID)
	}
	return ids, nil
}

func (r memStories) ListPublished(_ context.Context, f repository.StoryFilter) ([]models.Story, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	all := r.published(f.Search)
	switch f.Ordering {
	case "title":
		sort.SliceStable(all, func(i, j int) bool { return all[i].Title < all[j].Title })
	case "-title":
		sort.SliceStable(all, func(i, j int) bool { return all[i].Title > all[j].Title })
	case "created_at":
		sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	}
	return pageOf(all, f.Page), int64(len(all)), nil
}

func (r memStories) ListByAuthor(_ context.Context, authorID uint, p repository.Page) ([]models.Story, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	all := r.sorted(func(s models.Story) bool { return s.AuthorID == authorID })
	return pageOf(all, p), int64(len(all)), nil
}

func (r memStories) AddLike(_ context.Context, storyID, userID uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.storyLikes[[2]uint{storyID, userID}] = true
	return nil
}

func (r memStories) RemoveLike(_ context.Context, storyID, userID uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.storyLikes, [2]uint{storyID, userID})
	return nil
}

func (r memStories) IsLiked(_ context.Context, storyID, userID uint) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.storyLikes[[2]uint{storyID, userID}], nil
}

func (r memStories) LikedBy(_ context.Context, userID uint, ids []uint) (map[uint]bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := map[uint]bool{}
	for _, id := range ids {
		if r.db.storyLikes[[2]uint{id, userID}] {
			out[id] = true
		}
	}
	return out, nil
}

func (r memStories) CountLikes(_ context.Context, ids []uint) (map[uint]int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	wanted := idSet(ids)
	out := map[uint]int64{}
	for k := range r.db.storyLikes {
		if wanted[k[0]] {
			out[k[0]]++
		}
	}
	return out, nil
}

func (r memStories) CountComments(_ context.Context, ids []uint) (map[uint]int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	wanted := idSet(ids)
	out := map[uint]int64{}
	for _, c := range r.db.comments {
		if wanted[c.StoryID] {
			out[c.StoryID]++
		}
	}
	return out, nil
}

func (r memStories) Save(_ context.Context, userID, storyID uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	key := [2]uint{userID, storyID}
	if _, ok := r.db.saved[key]; !ok {
		r.db.saved[key] = time.Now().Add(time.Duration(r.db.nextID()) * time.Millisecond)
	}
	return nil
}

func (r memStories) Unsave(_ context.Context, userID, storyID uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.saved, [2]uint{userID, storyID})
	return nil
}

func (r memStories) SavedBy(_ context.Context, userID uint, ids []uint) (map[uint]bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := map[uint]bool{}
	for _, id := range ids {
		if _, ok := r.db.saved[[2]uint{userID, id}]; ok {
			out[id] = true
		}
	}
	return out, nil
}

func (r memStories) ListSaved(_ context.Context, userID uint, p repository.Page) ([]models.Story, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	type entry struct {
		story models.Story
		at    time.Time
	}
	entries := []entry{}
	for k, at := range r.db.saved {
		if k[0] == userID {
			entries = append(entries, entry{r.db.stories[k[1]], at})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].at.After(entries[j].at) })
	out := make([]models.Story, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.story)
	}
	return pageOf(out, p), int64(len(out)), nil
}

// characters

type memCharacters struct{ db *Store }

// conflict 模擬 idx_story_character_name 與 idx_story_character_color
func (r memCharacters) conflict(c *models.Character) error {
	for _, existing := range r.db.characters {
		if existing.ID == c.ID || existing.StoryID != c.StoryID {
			continue
		}
		if existing.Name == c.Name {
			return repository.ErrDuplicateCharacterName
		}
		if c.Color != "" && existing.Color == c.Color {
			return repository.ErrDuplicateCharacterColor
		}
	}
	return nil
}

func (r memCharacters) Create(_ context.Context, c *models.Character) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.conflict(c); err != nil {
		return err
	}
	c.ID = r.db.nextID()
	r.db.characters[c.ID] = *c
	return nil
}

func (r memCharacters) FindByID(_ context.Context, id uint) (*models.Character, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.characters[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r memCharacters) FindByIDs(_ context.Context, ids []uint) (map[uint]models.Character, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := map[uint]models.Character{}
	for _, id := range ids {
		if c, ok := r.db.characters[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

func (r memCharacters) Update(_ context.Context, c *models.Character) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.conflict(c); err != nil {
		return err
	}
	r.db.characters[c.ID] = *c
	return nil
}

// Delete 模擬 ON DELETE SET NULL
func (r memCharacters) Delete(_ context.Context, id uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.characters, id)
	for mid, m := range r.db.messages {
		if m.CharacterID != nil && *m.CharacterID == id {
			m.CharacterID = nil
			r.db.messages[mid] = m
		}
	}
	return nil
}

func (r memCharacters) ListByStory(_ context.Context, storyID uint) ([]models.Character, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []models.Character{}
	for _, c := range r.db.characters {
		if c.StoryID == storyID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memCharacters) NameTaken(_ context.Context, storyID uint, name string, excludeID uint) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, c := range r.db.characters {
		if c.StoryID == storyID && c.Name == name && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r memCharacters) ColorTaken(_ context.Context, storyID uint, color string, excludeID uint) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, c := range r.db.characters {
		if c.StoryID == storyID && c.Color == color && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// episodes

type memEpisodes struct{ db *Store }

func (r memEpisodes) Create(_ context.Context, e *models.Episode) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	e.ID = r.db.nextID()
	e.CreatedAt = time.Now().Add(time.Duration(e.ID) * time.Millisecond)
	r.db.episodes[e.ID] = *e
	return nil
}

func (r memEpisodes) FindByID(_ context.Context, id uint) (*models.Episode, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	e, ok := r.db.episodes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (r memEpisodes) Update(_ context.Context, e *models.Episode) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.episodes[e.ID] = *e
	return nil
}

func (r memEpisodes) Delete(_ context.Context, id uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.episodes, id)
	for mid, m := range r.db.messages {
		if m.EpisodeID == id {
			delete(r.db.messages, mid)
		}
	}
	return nil
}

func (r memEpisodes) ListByStory(_ context.Context, storyID uint) ([]models.Episode, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []models.Episode{}
	for _, e := range r.db.episodes {
		if e.StoryID == storyID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// messages

type memMessages struct{ db *Store }

// conflict 模擬 (episode_id, sort_order) 唯一索引
func (r memMessages) conflict(m *models.Message) bool {
	for _, existing := range r.db.messages {
		if existing.ID != m.ID && existing.EpisodeID == m.EpisodeID && existing.Order == m.Order {
			return true
		}
	}
	return false
}

func (r memMessages) Create(_ context.Context, m *models.Message) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.conflict(m) {
		return repository.ErrDuplicate
	}
	m.ID = r.db.nextID()
	r.db.messages[m.ID] = *m
	return nil
}

func (r memMessages) FindByID(_ context.Context, id uint) (*models.Message, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	m, ok := r.db.messages[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (r memMessages) Update(_ context.Context, m *models.Message) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.conflict(m) {
		return repository.ErrDuplicate
	}
	r.db.messages[m.ID] = *m
	return nil
}

func (r memMessages) Delete(_ context.Context, id uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.messages, id)
	return nil
}

func (r memMessages) ListByEpisode(_ context.Context, episodeID uint, p repository.Page) ([]models.Message, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []models.Message{}
	for _, m := range r.db.messages {
		if m.EpisodeID == episodeID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return pageOf(out, p), int64(len(out)), nil
}

func (r memMessages) ListOrders(_ context.Context, episodeID, excludingID uint) ([]float64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []float64{}
	for _, m := range r.db.messages {
		if m.EpisodeID == episodeID && m.ID != excludingID {
			out = append(out, m.Order)
		}
	}
	sort.Float64s(out)
	return out, nil
}

// comments

type memComments struct{ db *Store }

func (r memComments) Create(_ context.Context, c *models.Comment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c.ID = r.db.nextID()
	c.CreatedAt = time.Now().Add(time.Duration(c.ID) * time.Millisecond)
	r.db.comments[c.ID] = *c
	return nil
}

func (r memComments) FindByID(_ context.Context, id uint) (*models.Comment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r memComments) Delete(_ context.Context, id uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.comments, id)
	return nil
}

func (r memComments) ListByStory(_ context.Context, storyID uint, p repository.Page) ([]models.Comment, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []models.Comment{}
	for _, c := range r.db.comments {
		if c.StoryID == storyID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return pageOf(out, p), int64(len(out)), nil
}

func (r memComments) AddLike(_ context.Context, commentID, userID uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.commentLikes[[2]uint{commentID, userID}] = true
	return nil
}

func (r memComments) RemoveLike(_ context.Context, commentID, userID uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.commentLikes, [2]uint{commentID, userID})
	return nil
}

func (r memComments) IsLiked(_ context.Context, commentID, userID uint) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.commentLikes[[2]uint{commentID, userID}], nil
}

func (r memComments) LikedBy(_ context.Context, userID uint, ids []uint) (map[uint]bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := map[uint]bool{}
	for _, id := range ids {
		if r.db.commentLikes[[2]uint{id, userID}] {
			out[id] = true
		}
	}
	return out, nil
}

func (r memComments) CountLikes(_ context.Context, ids []uint) (map[uint]int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	wanted := idSet(ids)
	out := map[uint]int64{}
	for k := range r.db.commentLikes {
		if wanted[k[0]] {
			out[k[0]]++
		}
	}
	return out, nil
}

// notifications

type memNotifications struct{ db *Store }

func (r memNotifications) Create(_ context.Context, n *models.Notification) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	n.ID = r.db.nextID()
	n.CreatedAt = time.Now()
	r.db.notifications[n.ID] = *n
	return nil
}

func (r memNotifications) forRecipient(id uint) []models.Notification {
	out := []models.Notification{}
	for _, n := range r.db.notifications {
		if n.RecipientID == id {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r memNotifications) ListByRecipient(_ context.Context, id uint, p repository.Page) ([]models.Notification, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	all := r.forRecipient(id)
	return pageOf(all, p), int64(len(all)), nil
}

func (r memNotifications) CountUnread(_ context.Context, id uint) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var count int64
	for _, n := range r.forRecipient(id) {
		if !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r memNotifications) MarkAllRead(_ context.Context, id uint) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var count int64
	for nid, n := range r.db.notifications {
		if n.RecipientID == id && !n.IsRead {
			n.IsRead = true
			r.db.notifications[nid] = n
			count++
		}
	}
	return count, nil
}

// views

type memViews struct{ db *Store }

func (r memViews) Record(_ context.Context, storyID uint, ip string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.views[storyID] == nil {
		r.db.views[storyID] = map[string]bool{}
	}
	r.db.views[storyID][ip] = true
	return nil
}

func (r memViews) Count(_ context.Context, storyID uint) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return int64(len(r.db.views[storyID])), nil
}

func (r memViews) Counts(_ context.Context, ids []uint) (map[uint]int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := map[uint]int64{}
	for _, id := range ids {
		out[id] = int64(len(r.db.views[id]))
	}
	return out, nil
}

func (r memViews) Forget(_ context.Context, storyID uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.views, storyID)
	return nil
}
