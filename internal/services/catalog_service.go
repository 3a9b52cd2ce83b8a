package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"mangashelf/internal/cache"
	"mangashelf/internal/models"
	"mangashelf/internal/repositories"
)

// Ranking kinds accepted by Ranking. An unknown kind falls back to views.
const (
	RankByViews   = "views"
	RankByRating  = "rating"
	RankByFollows = "follows"
)

const homeCacheKey = "cache:home_aggregate"

// CatalogService is the read-model aggregator. Every method is a pure read
// that assembles a denormalized view from several collections and returns
// plain data. Absence is a nil/empty result, never an error, and fetch
// failures are logged and collapsed to the same safe defaults so presentation
// never breaks on a transient database problem.
type CatalogService struct {
	storyRepo       repositories.StoryRepository
	chapterRepo     repositories.ChapterRepository
	interactionRepo repositories.InteractionRepository
	genreRepo       repositories.GenreRepository
	userRepo        repositories.UserRepository
	commentRepo     repositories.CommentRepository
	cache           cache.Cache // nil disables caching
	homeTTL         time.Duration
}

// NewCatalogService creates a new CatalogService. Passing a nil cache
// disables the home aggregate cache.
func NewCatalogService(
	storyRepo repositories.StoryRepository,
	chapterRepo repositories.ChapterRepository,
	interactionRepo repositories.InteractionRepository,
	genreRepo repositories.GenreRepository,
	userRepo repositories.UserRepository,
	commentRepo repositories.CommentRepository,
	c cache.Cache,
	homeTTL time.Duration,
) *CatalogService {
	if homeTTL <= 0 {
		homeTTL = time.Minute
	}
	return &CatalogService{
		storyRepo:       storyRepo,
		chapterRepo:     chapterRepo,
		interactionRepo: interactionRepo,
		genreRepo:       genreRepo,
		userRepo:        userRepo,
		commentRepo:     commentRepo,
		cache:           c,
		homeTTL:         homeTTL,
	}
}

// StoryDetail assembles the story page for a slug. Returns nil when the story
// does not exist. The chapter count is always the live count of chapter rows,
// never a denormalized field. When a principal is present their interaction
// state is surfaced; a missing interaction row yields the zero UserStatus.
func (s *CatalogService) StoryDetail(slug string, principal *models.Principal) *StoryDetailView {
	story, err := s.storyRepo.GetBySlug(slug)
	if err != nil {
		log.Printf("Error fetching story %s: %v", slug, err)
		return nil
	}
	if story == nil {
		return nil
	}

	totalChapters, err := s.chapterRepo.CountByStoryID(story.ID)
	if err != nil {
		log.Printf("Error counting chapters for story %s: %v", story.ID, err)
		return nil
	}

	chapters, err := s.chapterRepo.FindByStoryID(story.ID)
	if err != nil {
		log.Printf("Error fetching chapters for story %s: %v", story.ID, err)
		return nil
	}

	var status UserStatus
	if principal != nil {
		interaction, err := s.interactionRepo.GetByUserAndStory(principal.ID, story.ID)
		if err != nil {
			log.Printf("Error fetching interaction for user %s story %s: %v", principal.ID, story.ID, err)
		} else if interaction != nil {
			status.IsFollowed = interaction.IsFollowed
			status.Rating = interaction.Rating
		}
	}

	summaries := make([]ChapterSummary, 0, len(chapters))
	for i := range chapters {
		c := &chapters[i]
		summaries = append(summaries, ChapterSummary{
			ID:            c.ID,
			StoryID:       c.StoryID,
			Title:         c.Title,
			ChapterNumber: c.Order,
			ReleaseDate:   c.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	return &StoryDetailView{
		Story:         toStoryView(story),
		Chapters:      summaries,
		TotalChapters: totalChapters,
		UserStatus:    status,
	}
}

// ChapterContent assembles the reader page for a chapter ID. Returns nil when
// the chapter is absent, and also when its parent story is missing: an
// orphaned chapter is treated as not found rather than an integrity error.
func (s *CatalogService) ChapterContent(chapterID string) *ChapterContentView {
	chapter, err := s.chapterRepo.GetByID(chapterID)
	if err != nil {
		log.Printf("Error fetching chapter %s: %v", chapterID, err)
		return nil
	}
	if chapter == nil {
		return nil
	}

	story, err := s.storyRepo.GetByID(chapter.StoryID)
	if err != nil {
		log.Printf("Error fetching story %s for chapter %s: %v", chapter.StoryID, chapterID, err)
		return nil
	}
	if story == nil {
		return nil
	}

	siblings, err := s.chapterRepo.FindByStoryID(story.ID)
	if err != nil {
		log.Printf("Error fetching sibling chapters for story %s: %v", story.ID, err)
		return nil
	}

	nav := make([]ChapterNav, 0, len(siblings))
	for i := range siblings {
		c := &siblings[i]
		nav = append(nav, ChapterNav{ID: c.ID, Title: c.Title, Order: c.Order})
	}

	content := chapter.Content
	if content == nil {
		content = []string{}
	}

	return &ChapterContentView{
		Chapter: ChapterView{
			ID:        chapter.ID,
			StoryID:   chapter.StoryID,
			Title:     chapter.Title,
			Content:   content,
			Order:     chapter.Order,
			CreatedAt: chapter.CreatedAt.UTC().Format(time.RFC3339),
		},
		Story: StoryRef{
			ID:         story.ID,
			Title:      story.Title,
			Slug:       story.Slug,
			CoverImage: story.CoverImage,
		},
		Siblings: nav,
	}
}

// RelatedStories lists stories sharing at least one of the given genres,
// excluding excludeID, capped at limit. An empty genre list short-circuits to
// an empty result without touching the database. No relevance ranking is
// applied beyond database order.
func (s *CatalogService) RelatedStories(genres []string, excludeID string, limit int) []StoryView {
	if len(genres) == 0 {
		return []StoryView{}
	}
	if limit <= 0 {
		limit = 5
	}

	stories, err := s.storyRepo.FindByGenres(genres, excludeID, limit)
	if err != nil {
		log.Printf("Error fetching related stories: %v", err)
		return []StoryView{}
	}

	views := make([]StoryView, 0, len(stories))
	for i := range stories {
		views = append(views, toStoryView(&stories[i]))
	}
	return views
}

// RelatedForStory resolves a story by slug and lists stories sharing its
// genres. The second return reports whether the story exists; it is false for
// unknown slugs and lookup failures. Only the story row is fetched here,
// never its chapters or interactions.
func (s *CatalogService) RelatedForStory(slug string, limit int) ([]StoryView, bool) {
	story, err := s.storyRepo.GetBySlug(slug)
	if err != nil {
		log.Printf("Error fetching story %s: %v", slug, err)
		return nil, false
	}
	if story == nil {
		return nil, false
	}
	return s.RelatedStories(story.Genres, story.ID, limit), true
}

// Comments lists a story's comments newest first. The second return reports
// whether the story exists; a story with no comments yields an empty list and
// true.
func (s *CatalogService) Comments(slug string) ([]CommentView, bool) {
	story, err := s.storyRepo.GetBySlug(slug)
	if err != nil {
		log.Printf("Error fetching story %s: %v", slug, err)
		return nil, false
	}
	if story == nil {
		return nil, false
	}

	comments, err := s.commentRepo.FindByStoryID(story.ID)
	if err != nil {
		log.Printf("Error fetching comments for story %s: %v", story.ID, err)
		return []CommentView{}, true
	}

	views := make([]CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, toCommentView(&comments[i]))
	}
	return views, true
}

// Ranking lists the top stories for a ranking kind. Unknown kinds fall back
// to the views ordering rather than failing.
func (s *CatalogService) Ranking(kind string, limit int) []RankingEntry {
	if limit <= 0 {
		limit = 10
	}

	var order string
	switch kind {
	case RankByRating:
		order = "rating_avg DESC, total_ratings DESC"
	case RankByFollows:
		order = "follower_count DESC"
	case RankByViews:
		order = "view_count DESC"
	default:
		order = "view_count DESC"
	}

	stories, err := s.storyRepo.FindRanked(order, limit)
	if err != nil {
		log.Printf("Error fetching ranking %s: %v", kind, err)
		return []RankingEntry{}
	}

	entries := make([]RankingEntry, 0, len(stories))
	for i := range stories {
		st := &stories[i]
		entries = append(entries, RankingEntry{
			ID:           st.ID,
			Title:        st.Title,
			Slug:         st.Slug,
			CoverImage:   st.CoverImage,
			ViewCount:    st.ViewCount,
			RatingAvg:    st.RatingAvg,
			TotalRatings: st.TotalRatings,
			Followers:    st.FollowerCount,
		})
	}
	return entries
}

// HomeAggregate computes the home page aggregate: the genre list plus story
// and user counters. The five sub-queries run concurrently; if any one fails
// the whole aggregate falls back to the zero HomeData, never a partial
// result. Results are served through the TTL cache when one is configured.
func (s *CatalogService) HomeAggregate(ctx context.Context) HomeData {
	if s.cache != nil {
		if data, ok := s.cache.Get(ctx, homeCacheKey); ok {
			var cached HomeData
			if err := json.Unmarshal(data, &cached); err != nil {
				log.Printf("Error decoding cached home aggregate: %v", err)
			} else {
				return cached
			}
		}
	}

	var (
		genres       []models.Genre
		totalStories int64
		completed    int64
		users        int64
		newStories   int64
	)

	var wg sync.WaitGroup
	errCh := make(chan error, 5)
	run := func(fetch func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fetch(); err != nil {
				errCh <- err
			}
		}()
	}

	weekAgo := time.Now().Add(-7 * 24 * time.Hour)
	run(func() (err error) { genres, err = s.genreRepo.FindAll(); return })
	run(func() (err error) { totalStories, err = s.storyRepo.Count(); return })
	run(func() (err error) { completed, err = s.storyRepo.CountByStatus(models.StatusCompleted); return })
	run(func() (err error) { users, err = s.userRepo.CountByRole(models.RoleUser); return })
	run(func() (err error) { newStories, err = s.storyRepo.CountCreatedSince(weekAgo); return })
	wg.Wait()
	close(errCh)

	if err := <-errCh; err != nil {
		log.Printf("Error fetching home aggregate: %v", err)
		return HomeData{Genres: []GenreView{}}
	}

	genreViews := make([]GenreView, 0, len(genres))
	for i := range genres {
		g := &genres[i]
		genreViews = append(genreViews, GenreView{ID: g.ID, Name: g.Name, Slug: g.Slug})
	}

	home := HomeData{
		Genres: genreViews,
		Stats: HomeStats{
			TotalStories: totalStories,
			Completed:    completed,
			Users:        users,
			NewStories:   newStories,
		},
	}

	if s.cache != nil {
		if data, err := json.Marshal(home); err == nil {
			s.cache.Set(ctx, homeCacheKey, data, s.homeTTL)
		}
	}
	return home
}
