package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/palmledger/palmledger/internal/notes"
	"github.com/palmledger/palmledger/internal/observability"
	"github.com/palmledger/palmledger/internal/palmtree"
	"github.com/palmledger/palmledger/internal/shared"
	"github.com/palmledger/palmledger/internal/thaidate"
)

// Service answers free-form Thai questions about the farm ledger. Each call
// is stateless: the same question against the same data always produces the
// same reply.
type Service struct {
	harvests    HarvestSource
	fertilizers FertilizerSource
	trees       TreeSource
	notes       NoteSource
	logger      *slog.Logger
	metrics     *observability.Metrics
	now         func() time.Time
}

func NewService(h HarvestSource, f FertilizerSource, t TreeSource, n NoteSource, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		harvests:    h,
		fertilizers: f,
		trees:       t,
		notes:       n,
		logger:      logger,
		metrics:     metrics,
		now:         time.Now,
	}
}

// Answer dispatches one question. Database failures never reach the caller
// as errors: they are logged with detail and turned into a generic Thai
// retry message, still a successful reply.
func (s *Service) Answer(ctx context.Context, message string) Reply {
	intent := MatchIntent(message)
	if s.metrics != nil {
		s.metrics.ObserveChatIntent(string(intent))
	}

	text, err := s.answer(ctx, intent, message)
	if err != nil {
		s.logger.Error("chat query failed", "intent", intent, "error", err)
		text = replyDataError
	}
	return Reply{Message: text, Intent: intent, Timestamp: s.now().UTC()}
}

func (s *Service) answer(ctx context.Context, intent Intent, message string) (string, error) {
	switch intent {
	case IntentGreeting:
		return replyGreeting, nil
	case IntentHelp, IntentNone:
		return replyHelp, nil
	case IntentNextHarvest:
		return s.nextHarvest(ctx)
	case IntentLastFertilizer:
		return s.lastFertilizer(ctx)
	case IntentTopTree:
		return s.topTree(ctx, message)
	case IntentNoteSummary:
		return s.noteSummary(ctx)
	case IntentNoteSearch:
		return s.noteSearch(ctx, message)
	default:
		return s.harvestFigure(ctx, intent, message)
	}
}

func (s *Service) nextHarvest(ctx context.Context) (string, error) {
	last, err := s.harvests.LatestDate(ctx)
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, shared.ErrNotFound) {
		return "ยังไม่มีข้อมูลการเก็บเกี่ยว บันทึกการเก็บเกี่ยวครั้งแรกก่อน แล้วผมจะคำนวณรอบถัดไปให้ครับ", nil
	}
	if err != nil {
		return "", err
	}

	next := shared.DateOf(last.AddDate(0, 0, shared.HarvestCycleDays))
	days := palmtree.DaysUntil(s.now(), next)

	var when string
	switch {
	case days == 0:
		when = "วันนี้"
	case days == 1:
		when = "พรุ่งนี้"
	default:
		when = fmt.Sprintf("อีก %d วัน", days)
	}
	return fmt.Sprintf("เก็บเกี่ยวล่าสุดเมื่อ%s คาดว่ารอบถัดไปคือ%s (%s)",
		thaidate.Format(last.Time), thaidate.Format(next.Time), when), nil
}

func (s *Service) lastFertilizer(ctx context.Context) (string, error) {
	rec, err := s.fertilizers.LastApplication(ctx)
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, shared.ErrNotFound) {
		return replyNoData, nil
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ใส่ปุ๋ยครั้งล่าสุดเมื่อ%s ชนิด %s จำนวน %s กระสอบ รวมค่าใช้จ่าย %s บาท",
		thaidate.Format(rec.Date.Time), rec.FertilizerType, kg(rec.AmountBags), baht(rec.TotalCost)), nil
}

func (s *Service) topTree(ctx context.Context, message string) (string, error) {
	period := ResolvePeriod(message, s.now())
	from := shared.DateOf(period.From)
	to := shared.DateOf(period.To)
	ranks, err := s.trees.Ranking(ctx, &from, &to, 3)
	if err != nil {
		return "", err
	}
	if len(ranks) == 0 {
		return replyNoData, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "ต้นที่ให้ผลผลิตสูงสุด%sคือต้น %s รวม %d ทะลาย (เก็บ %d ครั้ง)",
		period.Label, ranks[0].TreeID, ranks[0].TotalBunches, ranks[0].Harvests)
	if len(ranks) > 1 {
		b.WriteString(" รองลงมา:")
		for _, r := range ranks[1:] {
			fmt.Fprintf(&b, " %s (%d ทะลาย)", r.TreeID, r.TotalBunches)
		}
	}
	return b.String(), nil
}

func (s *Service) noteSummary(ctx context.Context) (string, error) {
	counts, err := s.notes.CountByCategory(ctx)
	if err != nil {
		return "", err
	}
	if len(counts) == 0 {
		return replyNoData, nil
	}
	total := 0
	parts := make([]string, 0, len(counts))
	for _, c := range counts {
		total += c.Count
		parts = append(parts, fmt.Sprintf("%s %d รายการ", c.Category, c.Count))
	}
	return fmt.Sprintf("มีบันทึกทั้งหมด %d รายการ แบ่งเป็น %s", total, strings.Join(parts, ", ")), nil
}

func (s *Service) noteSearch(ctx context.Context, message string) (string, error) {
	filter := noteFilterFrom(message)
	filter.PerPage = 5
	found, total, err := s.notes.Search(ctx, filter)
	if err != nil {
		return "", err
	}
	if total == 0 {
		return replyNoData, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "พบบันทึก %d รายการ", total)
	for _, n := range found {
		fmt.Fprintf(&b, "\n- %s: %s [%s/%s]", thaidate.FormatShort(n.Date.Time), n.Title, n.Category, n.Priority)
	}
	if total > len(found) {
		fmt.Fprintf(&b, "\nแสดง %d รายการแรก", len(found))
	}
	return b.String(), nil
}

func (s *Service) harvestFigure(ctx context.Context, intent Intent, message string) (string, error) {
	period := ResolvePeriod(message, s.now())
	sum, err := s.harvests.Summarize(ctx, shared.DateOf(period.From), shared.DateOf(period.To))
	if err != nil {
		return "", err
	}

	switch intent {
	case IntentProfit:
		if sum.Records == 0 {
			return replyNoData, nil
		}
		return fmt.Sprintf("กำไรสุทธิ%s %s บาท (รายได้ %s บาท หักค่าเก็บเกี่ยว %s บาท)",
			period.Label, baht(sum.NetProfit), baht(sum.TotalRevenue), baht(sum.TotalCost)), nil
	case IntentRevenue:
		if sum.Records == 0 {
			return replyNoData, nil
		}
		return fmt.Sprintf("รายได้%s %s บาท จากการเก็บเกี่ยว %d ครั้ง",
			period.Label, baht(sum.TotalRevenue), sum.Records), nil
	case IntentCost:
		fertCost, fertCount, err := s.fertilizers.TotalCost(ctx, shared.DateOf(period.From), shared.DateOf(period.To))
		if err != nil {
			return "", err
		}
		if sum.Records == 0 && fertCount == 0 {
			return replyNoData, nil
		}
		return fmt.Sprintf("ค่าใช้จ่าย%sรวม %s บาท (ค่าเก็บเกี่ยว %s บาท ค่าปุ๋ย %s บาท)",
			period.Label, baht(sum.TotalCost+fertCost), baht(sum.TotalCost), baht(fertCost)), nil
	case IntentWeight:
		if sum.Records == 0 {
			return replyNoData, nil
		}
		return fmt.Sprintf("น้ำหนักผลผลิต%sรวม %s กิโลกรัม", period.Label, kg(sum.TotalWeightKg)), nil
	case IntentAvgPrice:
		if sum.Records == 0 {
			return replyNoData, nil
		}
		return fmt.Sprintf("ราคาเฉลี่ย%s %s บาทต่อกิโลกรัม", period.Label, baht(sum.AvgPricePerKg)), nil
	case IntentHarvestCount:
		if sum.Records == 0 {
			return replyNoData, nil
		}
		return fmt.Sprintf("เก็บเกี่ยว%sทั้งหมด %d ครั้ง", period.Label, sum.Records), nil
	default:
		return replyHelp, nil
	}
}

// noteFilterFrom lifts category/priority/date hints out of a search question
// and uses the remaining text as the keyword.
func noteFilterFrom(message string) notes.SearchFilter {
	var filter notes.SearchFilter
	keyword := message

	for _, cat := range []string{notes.CategoryUrgent, notes.CategoryImportant, notes.CategoryGeneral} {
		if strings.Contains(keyword, cat) {
			filter.Category = cat
			keyword = strings.ReplaceAll(keyword, cat, " ")
			break
		}
	}
	for _, pri := range []string{notes.PriorityHigh, notes.PriorityMedium, notes.PriorityLow} {
		if strings.Contains(keyword, pri) {
			filter.Priority = pri
			keyword = strings.ReplaceAll(keyword, pri, " ")
			break
		}
	}

	for _, noise := range []string{"ค้นหา", "บันทึก", "โน้ต", "หมายเหตุ", "เกี่ยวกับ", "เรื่อง", "note", "หน่อย", "ให้หน่อย", "ดู"} {
		keyword = strings.ReplaceAll(keyword, noise, " ")
	}
	filter.Keyword = strings.Join(strings.Fields(keyword), " ")
	return filter
}
