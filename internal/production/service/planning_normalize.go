package service

import (
	"time"

	"github.com/sarakts28/febric-flow-backend/internal/production/entity"
)

// normalizePlanning brings a stored record in line with the calendar and its
// order slip. It reports whether the record changed and, when the linked
// article must move, the status the article should take.
//
// Applying it to its own output is a no-op.
func normalizePlanning(p *entity.ArticlePlanning, articleStatus string, now time.Time) (changed bool, articleTarget string) {
	loc := now.Location()
	today := DateOnly(now, loc)

	if !p.Late && DateOnly(p.WhenProcessEnd, loc).Before(today) {
		p.Late = true
		changed = true
	}

	if p.OrderSlip == entity.OrderSlipReceived {
		if p.Status != entity.PlanningStatusCompleted {
			p.Status = entity.PlanningStatusCompleted
			changed = true
		}
		if articleStatus != "" && !entity.IsTerminalArticleStatus(articleStatus) {
			articleTarget = entity.ArticleStatusCompleted
		}
	}

	if p.Status == entity.PlanningStatusPending && !DateOnly(p.WhenProcessStart, loc).After(today) {
		p.Status = entity.PlanningStatusInProgress
		changed = true
	}

	return changed, articleTarget
}

// applyOrderSlip switches the order slip and layers the status cascade on top.
// prevStatus is the status before the current request touched the record.
func applyOrderSlip(p *entity.ArticlePlanning, slip, prevStatus, articleStatus string) (articleTarget string) {
	prevSlip := p.OrderSlip
	p.OrderSlip = slip

	switch {
	case slip == entity.OrderSlipReceived && prevSlip != entity.OrderSlipReceived:
		p.Status = entity.PlanningStatusCompleted
		if !entity.IsTerminalArticleStatus(articleStatus) {
			articleTarget = entity.ArticleStatusCompleted
		}
	case slip == entity.OrderSlipIssued && prevStatus == entity.PlanningStatusCompleted:
		p.Status = entity.PlanningStatusInProgress
		if articleStatus != entity.ArticleStatusUnderProcess {
			articleTarget = entity.ArticleStatusUnderProcess
		}
	}
	return articleTarget
}

// deriveSchedule recomputes the fields that depend on the end date.
func deriveSchedule(p *entity.ArticlePlanning, now time.Time) {
	p.ProcessDays = daysBetween(now, p.WhenProcessEnd)
	p.Late = DateOnly(p.WhenProcessEnd, now.Location()).Before(DateOnly(now, now.Location()))
}
