package pipeline

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/sells-group/opportunity-cli/internal/model"
	"github.com/sells-group/opportunity-cli/internal/search"
)

// datasetSites are the platforms searched for each use case, followed by
// one unrestricted query.
var datasetSites = []string{"kaggle.com", "huggingface.co", "github.com"}

func datasetQueries(title, industry string) []string {
	base := strings.TrimSpace(title + " " + industry)
	qs := make([]string, 0, len(datasetSites)+1)
	for _, site := range datasetSites {
		qs = append(qs, base+" dataset site:"+site)
	}
	return append(qs, base+" AI ML dataset")
}

func guideQuery(title string) string {
	return strings.TrimSpace(title + " implementation guide tutorial best practices")
}

// resources writes one record per use case, up to MaxResourceUseCases, in
// use-case order. With no use cases it writes an empty list without
// touching either gateway.
func (p *Pipeline) resources(ctx context.Context, s model.State) (model.State, error) {
	if !s.HasUseCases() {
		s.Resources = []model.Resource{}
		return s, nil
	}

	cases := s.UseCases
	if len(cases) > p.opts.MaxResourceUseCases {
		cases = cases[:p.opts.MaxResourceUseCases]
	}
	industry := s.IndustryOr("")

	out := make([]model.Resource, 0, len(cases))
	for _, uc := range cases {
		datasets, err := p.searchDatasets(ctx, datasetQueries(uc.Title, industry))
		if err != nil {
			return s, err
		}

		guides, err := p.search.Search(ctx, guideQuery(uc.Title), p.opts.MaxResults)
		if err != nil {
			return s, err
		}

		out = append(out, model.Resource{
			UseCase:              uc.Title,
			Datasets:             search.Format(datasets),
			ImplementationGuides: search.Format(guides),
		})
	}

	s.Resources = out
	return s, nil
}

// searchDatasets runs queries and concatenates their results in query order.
func (p *Pipeline) searchDatasets(ctx context.Context, queries []string) ([]search.Result, error) {
	batches := make([][]search.Result, len(queries))

	if p.opts.ParallelFanout {
		g, gCtx := errgroup.WithContext(ctx)
		for i, q := range queries {
			i, q := i, q
			g.Go(func() error {
				rs, err := p.search.Search(gCtx, q, p.opts.DatasetMaxResults)
				if err != nil {
					return err
				}
				batches[i] = rs
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, q := range queries {
			rs, err := p.search.Search(ctx, q, p.opts.DatasetMaxResults)
			if err != nil {
				return nil, err
			}
			batches[i] = rs
		}
	}

	var all []search.Result
	for _, b := range batches {
		all = append(all, b...)
	}
	return all, nil
}
