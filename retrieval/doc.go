// Package retrieval defines the knowledge-base collaborator port used
// by knowledgeBase nodes, plus a reference in-memory implementation
// backed by cosine similarity over embedded document chunks.
//
// The engine depends only on the Searcher interface; production
// deployments substitute a real vector database behind it.
package retrieval
