package vo

import "github.com/Xushengqwer/blog_service/models/entities"

// TaxonomyVO 标签 / 分类读视图
type TaxonomyVO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

func NewTagVOs(tags []*entities.Tag) []*TaxonomyVO {
	out := make([]*TaxonomyVO, 0, len(tags))
	for _, t := range tags {
		out = append(out, &TaxonomyVO{ID: t.ID, Name: t.Name})
	}
	return out
}

func NewCategoryVOs(categories []*entities.Category) []*TaxonomyVO {
	out := make([]*TaxonomyVO, 0, len(categories))
	for _, c := range categories {
		out = append(out, &TaxonomyVO{ID: c.ID, Name: c.Name})
	}
	return out
}
